package types

// CompletionChunk is the JSON payload of one upstream SSE event.
type CompletionChunk struct {
	ID      string        `json:"id,omitempty"`
	Model   string        `json:"model,omitempty"`
	Choices []ChunkChoice `json:"choices"`
	Error   *ChunkError   `json:"error,omitempty"`
}

// ChunkError is an error reported by the provider inside the stream.
type ChunkError struct {
	Message string `json:"message"`
	Code    any    `json:"code,omitempty"`
}

// ChunkChoice represents a choice in a completion chunk. Providers send the
// text either as a full message or as a streaming delta.
type ChunkChoice struct {
	Index        int           `json:"index"`
	Message      *ChunkContent `json:"message,omitempty"`
	Delta        *ChunkContent `json:"delta,omitempty"`
	FinishReason *string       `json:"finish_reason"` // Pointer to distinguish null from ""
}

// ChunkContent carries the text of a choice.
type ChunkContent struct {
	Role    string  `json:"role,omitempty"`
	Content *string `json:"content"`
}

// Text returns the content of the choice, preferring message over delta.
// ok is false when the choice carries neither.
func (c *ChunkChoice) Text() (text string, ok bool) {
	src := c.Message
	if src == nil {
		src = c.Delta
	}
	if src == nil {
		return "", false
	}
	if src.Content == nil {
		return "", true
	}
	return *src.Content, true
}

// SSEDoneData is the data payload of the terminal SSE event.
const SSEDoneData = "[DONE]"

// ContentTypeEventStream labels the relay's response body.
const ContentTypeEventStream = "text/event-stream"
