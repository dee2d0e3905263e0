package logs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandalnilabja/chatstream/internal/storage"
)

func newMux(t *testing.T) (*http.ServeMux, storage.Storage) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "logs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	h := New(store)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/logs", h.List)
	mux.HandleFunc("GET /api/logs/{id}", h.Get)
	mux.HandleFunc("DELETE /api/logs", h.Delete)
	return mux, store
}

func seed(t *testing.T, store storage.Storage, entries ...*storage.RequestLog) {
	t.Helper()
	for _, e := range entries {
		require.NoError(t, store.LogRequest(e))
	}
}

type listResponse struct {
	Logs   []storage.RequestLog `json:"logs"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

func TestList(t *testing.T) {
	mux, store := newMux(t)
	now := time.Now().UTC()
	seed(t, store,
		&storage.RequestLog{Provider: "openrouter", StatusCode: 200, CreatedAt: now.Add(-2 * time.Minute)},
		&storage.RequestLog{Provider: "azure", StatusCode: 500, CreatedAt: now.Add(-time.Minute)},
		&storage.RequestLog{Provider: "openrouter", StatusCode: 200, CreatedAt: now},
	)

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantLimit int
	}{
		{"all", "", 3, defaultLimit},
		{"by provider", "?provider=openrouter", 2, defaultLimit},
		{"by status", "?status_code=500", 1, defaultLimit},
		{"limited", "?limit=1", 1, 1},
		{"limit capped", "?limit=100000", 3, maxLimit},
		{"bad limit ignored", "?limit=abc", 3, defaultLimit},
		{"offset", "?offset=2", 1, defaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var resp listResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Len(t, resp.Logs, tt.wantCount)
			assert.Equal(t, tt.wantLimit, resp.Limit)
		})
	}
}

func TestList_Empty(t *testing.T) {
	mux, _ := newMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"logs":[]`)
}

func TestGet(t *testing.T) {
	mux, store := newMux(t)
	entry := &storage.RequestLog{Provider: "azure", RequestID: "req-1", StatusCode: 200}
	seed(t, store, entry)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs/"+entry.ID, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got storage.RequestLog
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "azure", got.Provider)
}

func TestGet_NotFound(t *testing.T) {
	mux, _ := newMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/logs/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete(t *testing.T) {
	mux, store := newMux(t)
	seed(t, store,
		&storage.RequestLog{Provider: "openrouter", CreatedAt: time.Now().UTC().AddDate(0, 0, -10)},
		&storage.RequestLog{Provider: "openrouter", CreatedAt: time.Now().UTC()},
	)

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"missing date", "", http.StatusBadRequest},
		{"bad date", "?before_date=yesterday", http.StatusBadRequest},
		{"valid", "?before_date=" + time.Now().UTC().AddDate(0, 0, -1).Format(time.DateOnly), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/logs"+tt.query, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	remaining, err := store.GetRequestLogs(storage.LogFilter{})
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
