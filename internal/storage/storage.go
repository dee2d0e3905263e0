// Package storage provides the request log interface and implementations.
package storage

import (
	"github.com/mandalnilabja/chatstream/internal/storage/models"
	"github.com/mandalnilabja/chatstream/internal/storage/sqlite"
)

// Re-export types from models package for convenience
type (
	RequestLog = models.RequestLog
	LogFilter  = models.LogFilter
)

// Re-export errors from sqlite package
var (
	ErrNotFound      = sqlite.ErrNotFound
	ErrInvalidInput  = sqlite.ErrInvalidInput
	ErrStorageClosed = sqlite.ErrStorageClosed
)

// Storage defines the interface for the request log
type Storage interface {
	LogRequest(log *models.RequestLog) error
	GetRequestLog(id string) (*models.RequestLog, error)
	GetRequestLogs(filter models.LogFilter) ([]*models.RequestLog, error)
	DeleteRequestLogs(olderThan string) (int64, error)

	Close() error
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (Storage, error) {
	return sqlite.New(dbPath)
}
