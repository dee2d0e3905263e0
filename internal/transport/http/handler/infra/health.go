package infra

import (
	"net/http"
	"time"

	"github.com/mandalnilabja/chatstream/internal/provider"
	"github.com/mandalnilabja/chatstream/internal/transport/http/handler/shared"
	"github.com/mandalnilabja/chatstream/internal/version"
)

// RootStatus returns JSON status and version information at /.
// The provider shown is the one the next chat request would use.
func (h *Handlers) RootStatus(w http.ResponseWriter, r *http.Request) {
	prov := provider.Resolve(h.Env, h.Options)

	response := map[string]any{
		"name":     "chatstream",
		"version":  version.Version,
		"status":   "running",
		"chat":     "/api/chat",
		"provider": prov.Name(),
	}
	if model := prov.Model(); model != "" {
		response["model"] = model
	}
	if h.RequestLog {
		response["logs"] = "/api/logs"
	}
	shared.WriteJSON(w, response, http.StatusOK)
}

// HealthCheck handler returns the application health status.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, map[string]any{
		"status": "active",
		"app":    "chatstream",
		"uptime": time.Since(h.StartTime).Round(time.Second).String(),
	}, http.StatusOK)
}
