// Package shared holds response helpers used by the JSON endpoints.
package shared

import (
	"encoding/json"
	"net/http"

	"github.com/mandalnilabja/chatstream/internal/types"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes the same {"success": false, "error": ...} body the
// chat endpoint uses.
func WriteJSONError(w http.ResponseWriter, message string, status int) {
	WriteJSON(w, &types.ErrorResponse{Success: false, Error: message}, status)
}
