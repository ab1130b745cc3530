package llm

import (
	"context"

	"github.com/kbukum/voicelist/provider"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// UserMessage is a single user turn.
func UserMessage(text string) Message { return Message{Role: RoleUser, Content: text} }

// Complete runs a one-turn exchange through p and returns only the reply
// text.
func Complete(ctx context.Context, p provider.RequestResponse[CompletionRequest, CompletionResponse], system, user string) (string, error) {
	resp, err := p.Execute(ctx, CompletionRequest{SystemPrompt: system, Messages: []Message{UserMessage(user)}})
	return resp.Content, err
}
