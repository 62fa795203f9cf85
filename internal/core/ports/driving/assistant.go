package driving

import (
	"context"
	"encoding/json"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// Assistant event types emitted while a turn runs.
const (
	AssistantEventText       = "text-delta"
	AssistantEventToolCall   = "tool-call"
	AssistantEventToolResult = "tool-result"
	AssistantEventDone       = "done"
	AssistantEventError      = "error"
)

// AssistantEvent is one progress event of an assistant turn, shaped for
// direct SSE serialisation. Which fields are set depends on Type.
type AssistantEvent struct {
	Type     string          `json:"type"`
	ThreadID string          `json:"threadId,omitempty"`
	Text     string          `json:"text,omitempty"`
	ToolName string          `json:"toolName,omitempty"`
	Args     json.RawMessage `json:"args,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
	Message  string          `json:"message,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// AssistantReply is the completed result of one assistant turn.
type AssistantReply struct {
	ThreadID string         `json:"threadId"`
	Message  domain.Message `json:"message"`
}

// AssistantService runs the CRM assistant: a tool-calling conversation
// loop over the user's data.
type AssistantService interface {
	// SendMessage appends the user's message to the thread, runs the
	// model loop until it stops calling tools (bounded at a fixed step
	// cap) and persists and returns the assistant's reply. An empty
	// threadID starts a new thread named from the message. sink, when
	// non-nil, receives progress events as the turn runs.
	SendMessage(ctx context.Context, userID, threadID, content string, sink func(AssistantEvent)) (*AssistantReply, error)
}
