package tokenizer

import (
	"strings"

	"github.com/mandalnilabja/chatstream/internal/types"
)

// Message token overhead varies by model family.
const (
	messageOverheadGPT4  = 3 // <|start|>role<|end|>
	messageOverheadGPT35 = 4

	// Reply priming tokens (assistant response start)
	replyPrimingTokens = 3
)

// CountMessages counts tokens for a slice of messages.
func (t *TiktokenTokenizer) CountMessages(messages []types.Message, model string) (int, error) {
	total := 0
	overhead := messageOverhead(model)

	for _, msg := range messages {
		roleTokens, err := t.CountTokens(msg.Role, model)
		if err != nil {
			return 0, err
		}
		contentTokens, err := t.CountTokens(msg.Content, model)
		if err != nil {
			return 0, err
		}
		total += roleTokens + contentTokens + overhead
	}

	return total + replyPrimingTokens, nil
}

// messageOverhead returns the per-message token overhead for a model.
func messageOverhead(model string) int {
	if strings.Contains(strings.ToLower(model), "gpt-3.5") {
		return messageOverheadGPT35
	}
	return messageOverheadGPT4
}
