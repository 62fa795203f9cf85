package driven

import (
	"context"
	"encoding/json"
)

// ChatMessage is one turn of a model conversation in provider-neutral
// form. ToolCalls is set on assistant turns that requested tools;
// ToolCallID ties a tool turn back to the call it answers.
type ChatMessage struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is a model's request to invoke one named tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// ToolDef describes a tool the model may call. Parameters is a JSON
// Schema object.
type ToolDef struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// ChatResult is the model's reply to one chat call: assistant text,
// any tool calls it wants executed, or both.
type ChatResult struct {
	Content   string
	ToolCalls []ToolCall
}

// CompletionService talks to a chat-completion model.
// Callers map provider failures to domain.ErrAssistantUnavailable.
type CompletionService interface {
	// Chat sends the conversation so far, with the available tools, and
	// returns the model's next turn.
	Chat(ctx context.Context, messages []ChatMessage, tools []ToolDef) (*ChatResult, error)

	// Generate produces a short plain-text completion for a single
	// prompt. Used for thread naming.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the chat model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request.
	Ping(ctx context.Context) error
}
