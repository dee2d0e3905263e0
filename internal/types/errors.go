package types

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body returned when a chat request fails
// before streaming starts.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResponse builds a failed ErrorResponse from err.
func NewErrorResponse(err error) *ErrorResponse {
	msg := "Unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &ErrorResponse{Success: false, Error: msg}
}

// WriteError writes an ErrorResponse to the response writer.
func WriteError(w http.ResponseWriter, statusCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(NewErrorResponse(err))
}
