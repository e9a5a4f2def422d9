package assistant

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// Message is a single chat turn handed to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the text-generation backend the assistant talks to. The rest
// of the app only ever sees this interface; a nil provider means "answer
// from the fallback templates".
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// llmProvider adapts a langchaingo model to the Provider interface. The
// message list is flattened into a single prompt, system context first.
type llmProvider struct {
	model llms.Model
}

// NewLLMProvider wraps a langchaingo model.
func NewLLMProvider(model llms.Model) Provider {
	return &llmProvider{model: model}
}

func (p *llmProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	var b strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			b.WriteString(msg.Content)
			b.WriteString("\n\nCONVERSATION:\n")
		case "user":
			b.WriteString("User: ")
			b.WriteString(msg.Content)
			b.WriteByte('\n')
		case "assistant":
			b.WriteString("Assistant: ")
			b.WriteString(msg.Content)
			b.WriteByte('\n')
		}
	}
	b.WriteString("Assistant:")

	out, err := llms.GenerateFromSinglePrompt(ctx, p.model, b.String())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
