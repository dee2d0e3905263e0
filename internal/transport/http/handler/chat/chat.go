// Package chat serves the streaming chat endpoint.
package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mandalnilabja/chatstream/internal/provider"
	"github.com/mandalnilabja/chatstream/internal/storage"
	"github.com/mandalnilabja/chatstream/internal/tokenizer"
	"github.com/mandalnilabja/chatstream/internal/transport/http/middleware"
	"github.com/mandalnilabja/chatstream/internal/types"
	"github.com/mandalnilabja/chatstream/internal/upstream"
)

// ErrPromptTooLarge is returned when the conversation exceeds MaxPromptTokens.
var ErrPromptTooLarge = errors.New("prompt exceeds the configured token limit")

// guardModel is used for size estimates when the provider names no model.
const guardModel = "gpt-3.5-turbo"

// Handlers holds the dependencies of the chat endpoint.
type Handlers struct {
	Client    *upstream.Client
	Env       provider.Env
	Options   provider.Options
	Tokenizer tokenizer.Tokenizer
	Storage   storage.Storage
	Logger    *slog.Logger

	// MaxPromptTokens rejects larger conversations; 0 disables the check
	MaxPromptTokens int
}

// Chat handles POST /api/chat. It forwards the conversation to the
// resolved provider and streams the text content back as it arrives.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("Failed to decode chat request", "error", err)
		types.WriteError(w, http.StatusInternalServerError, fmt.Errorf("decode request: %w", err))
		return
	}

	messages := req.Conversation()
	prov := provider.Resolve(h.Env, h.Options)

	entry := &storage.RequestLog{
		RequestID:      middleware.GetRequestID(r.Context()),
		Provider:       prov.Name(),
		Model:          prov.Model(),
		KeyFingerprint: storage.KeyFingerprint(prov.APIKey()),
		MessageCount:   len(messages),
	}
	defer func() {
		entry.DurationMs = time.Since(start).Milliseconds()
		h.logRequest(entry)
	}()

	if err := h.checkPromptSize(messages, prov.Model()); err != nil {
		h.fail(w, entry, err)
		return
	}

	stream, err := h.Client.Stream(r.Context(), prov, messages)
	if err != nil {
		h.Logger.Error("Failed to open upstream stream", "provider", prov.Name(), "error", err)
		h.fail(w, entry, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", types.ContentTypeEventStream)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	entry.StatusCode = http.StatusOK

	rc := http.NewResponseController(w)
	_ = rc.Flush()

	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			entry.BytesStreamed = stream.BytesEmitted()
			entry.ErrorMessage = err.Error()
			h.Logger.Error("Upstream stream failed", "provider", prov.Name(), "error", err)
			// Headers are gone; abort so the caller sees a truncated response.
			panic(http.ErrAbortHandler)
		}
		if _, err := w.Write(chunk); err != nil {
			entry.ErrorMessage = err.Error()
			h.Logger.Debug("Client write failed", "error", err)
			break
		}
		_ = rc.Flush()
	}

	entry.BytesStreamed = stream.BytesEmitted()
}

// checkPromptSize estimates the conversation size when a limit is set.
func (h *Handlers) checkPromptSize(messages []types.Message, model string) error {
	if h.MaxPromptTokens <= 0 || h.Tokenizer == nil {
		return nil
	}
	if model == "" {
		model = guardModel
	}

	tokens, err := h.Tokenizer.CountMessages(messages, model)
	if err != nil {
		// An estimate we cannot make does not block the request.
		h.Logger.Warn("Failed to count prompt tokens", "error", err)
		return nil
	}
	if tokens > h.MaxPromptTokens {
		return fmt.Errorf("%w: %d > %d", ErrPromptTooLarge, tokens, h.MaxPromptTokens)
	}
	return nil
}

// fail writes the JSON error response used for failures before streaming.
func (h *Handlers) fail(w http.ResponseWriter, entry *storage.RequestLog, err error) {
	entry.StatusCode = http.StatusInternalServerError
	entry.ErrorMessage = err.Error()
	types.WriteError(w, http.StatusInternalServerError, err)
}

// logRequest stores the entry when the request log is enabled.
func (h *Handlers) logRequest(entry *storage.RequestLog) {
	if h.Storage == nil {
		return
	}
	if err := h.Storage.LogRequest(entry); err != nil {
		h.Logger.Warn("Failed to store request log", "request_id", entry.RequestID, "error", err)
	}
}
