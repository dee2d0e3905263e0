// Package models defines the records kept by the request log.
package models

import "time"

// RequestLog records one proxied chat request. Message content is never
// stored; only metadata about the exchange.
type RequestLog struct {
	ID             string    `json:"id"`
	RequestID      string    `json:"request_id"`
	Provider       string    `json:"provider"`
	Model          string    `json:"model,omitempty"`
	KeyFingerprint string    `json:"key_fingerprint,omitempty"`
	MessageCount   int       `json:"message_count"`
	StatusCode     int       `json:"status_code"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	BytesStreamed  int64     `json:"bytes_streamed"`
	DurationMs     int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

// LogFilter contains parameters for filtering request logs
type LogFilter struct {
	Provider   string
	StatusCode *int
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}
