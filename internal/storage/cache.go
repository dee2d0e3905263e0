package storage

import (
	"github.com/dgraph-io/ristretto/v2"

	"github.com/mandalnilabja/chatstream/internal/storage/models"
)

// CachedStorage wraps a Storage with a read-through cache for single log
// lookups. Log entries are immutable once written, so cached values never
// go stale; they only leave the cache on eviction or deletion.
type CachedStorage struct {
	Storage
	cache *ristretto.Cache[string, *models.RequestLog]
}

// NewCachedStorage creates a cache holding up to maxEntries log entries.
func NewCachedStorage(store Storage, maxEntries int64) (*CachedStorage, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, *models.RequestLog]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CachedStorage{Storage: store, cache: cache}, nil
}

// LogRequest writes the entry and primes the cache with it.
func (c *CachedStorage) LogRequest(log *models.RequestLog) error {
	if err := c.Storage.LogRequest(log); err != nil {
		return err
	}
	c.cache.Set(log.ID, log, 1)
	return nil
}

// GetRequestLog serves from cache, falling back to the wrapped storage.
func (c *CachedStorage) GetRequestLog(id string) (*models.RequestLog, error) {
	if log, ok := c.cache.Get(id); ok {
		return log, nil
	}

	log, err := c.Storage.GetRequestLog(id)
	if err != nil {
		return nil, err
	}
	c.cache.Set(id, log, 1)
	return log, nil
}

// DeleteRequestLogs deletes from storage and empties the cache.
func (c *CachedStorage) DeleteRequestLogs(olderThan string) (int64, error) {
	n, err := c.Storage.DeleteRequestLogs(olderThan)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		c.cache.Clear()
	}
	return n, nil
}

// Wait blocks until pending cache writes are applied.
func (c *CachedStorage) Wait() {
	c.cache.Wait()
}

// Close closes the cache and the wrapped storage.
func (c *CachedStorage) Close() error {
	c.cache.Close()
	return c.Storage.Close()
}
