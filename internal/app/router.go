package app

import (
	"log/slog"
	"net/http"

	"github.com/mandalnilabja/chatstream/internal/transport/http/handler"
	"github.com/mandalnilabja/chatstream/internal/transport/http/middleware"
)

// RouterOptions configures the HTTP router behavior.
type RouterOptions struct {
	Logger *slog.Logger
}

// NewRouter creates and configures the HTTP router with all application routes.
// Returns an http.Handler with middleware applied.
func NewRouter(repo *handler.Repo, opts *RouterOptions) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", repo.Infra.HealthCheck)
	mux.HandleFunc("POST /api/chat", repo.Chat.Chat)

	// Request log API only exists when storage is enabled
	if repo.Logs != nil {
		mux.HandleFunc("GET /api/logs", repo.Logs.List)
		mux.HandleFunc("GET /api/logs/{id}", repo.Logs.Get)
		mux.HandleFunc("DELETE /api/logs", repo.Logs.Delete)
	}

	mux.HandleFunc("GET /{$}", repo.Infra.RootStatus)

	// Apply middleware chain (order: outer to inner)
	var h http.Handler = mux

	if opts != nil && opts.Logger != nil {
		h = middleware.RequestLogger(opts.Logger)(h)
	}

	h = middleware.RequestID(h)
	h = middleware.CORS(h)

	return h
}
