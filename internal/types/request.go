package types

// ChatRequest is the inbound body of POST /api/chat.
type ChatRequest struct {
	// Prompt is the system prompt placed first in the conversation.
	Prompt string `json:"prompt"`

	// Messages is the prior conversation, oldest first.
	Messages []Message `json:"messages"`

	// Input is the latest user input, placed last.
	Input string `json:"input"`
}

// Conversation returns the ordered message list sent upstream:
// the system prompt, every prior message, then the user input.
func (r *ChatRequest) Conversation() []Message {
	out := make([]Message, 0, len(r.Messages)+2)
	out = append(out, NewTextMessage(RoleSystem, r.Prompt))
	out = append(out, r.Messages...)
	out = append(out, NewTextMessage(RoleUser, r.Input))
	return out
}

// CompletionRequest is the body posted to the provider's chat completions
// endpoint. Model is omitted for Azure, where the deployment picks it.
type CompletionRequest struct {
	Model    string    `json:"model,omitempty"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream,omitempty"`
}
