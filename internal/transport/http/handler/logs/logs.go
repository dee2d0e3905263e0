// Package logs serves read access to the request log.
package logs

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mandalnilabja/chatstream/internal/storage"
	"github.com/mandalnilabja/chatstream/internal/transport/http/handler/shared"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Handlers holds the dependencies for request log handlers.
type Handlers struct {
	Storage storage.Storage
}

// New creates a new instance of request log handlers.
func New(store storage.Storage) *Handlers {
	return &Handlers{Storage: store}
}

// List handles GET /api/logs.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	filter := parseLogFilter(r)

	entries, err := h.Storage.GetRequestLogs(filter)
	if err != nil {
		shared.WriteJSONError(w, "Failed to get request logs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []*storage.RequestLog{}
	}

	shared.WriteJSON(w, map[string]any{
		"logs":   entries,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	}, http.StatusOK)
}

// Get handles GET /api/logs/{id}.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Storage.GetRequestLog(r.PathValue("id"))
	if errors.Is(err, storage.ErrNotFound) {
		shared.WriteJSONError(w, "Request log not found", http.StatusNotFound)
		return
	}
	if err != nil {
		shared.WriteJSONError(w, "Failed to get request log: "+err.Error(), http.StatusInternalServerError)
		return
	}

	shared.WriteJSON(w, entry, http.StatusOK)
}

// Delete handles DELETE /api/logs?before_date=YYYY-MM-DD.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	beforeDate := r.URL.Query().Get("before_date")
	if beforeDate == "" {
		shared.WriteJSONError(w, "before_date query parameter is required (format: YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse(time.DateOnly, beforeDate); err != nil {
		shared.WriteJSONError(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	deleted, err := h.Storage.DeleteRequestLogs(beforeDate)
	if err != nil {
		shared.WriteJSONError(w, "Failed to delete logs: "+err.Error(), http.StatusInternalServerError)
		return
	}

	shared.WriteJSON(w, map[string]any{
		"deleted_count": deleted,
		"before_date":   beforeDate,
	}, http.StatusOK)
}

// parseLogFilter creates a LogFilter from query parameters.
// Invalid values fall back to the defaults.
func parseLogFilter(r *http.Request) storage.LogFilter {
	q := r.URL.Query()
	filter := storage.LogFilter{Limit: defaultLimit}

	filter.Provider = q.Get("provider")
	if v := q.Get("status_code"); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			filter.StatusCode = &code
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = min(limit, maxLimit)
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	if v := q.Get("start_date"); v != "" {
		if t, err := time.Parse(time.DateOnly, v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := q.Get("end_date"); v != "" {
		if t, err := time.Parse(time.DateOnly, v); err == nil {
			filter.EndDate = &t
		}
	}

	return filter
}
