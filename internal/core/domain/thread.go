package domain

import (
	"encoding/json"
	"time"
)

// Thread is one assistant conversation. Threads are named automatically
// from the first user message.
type Thread struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MessageRole identifies who produced a thread message.
type MessageRole string

// Message roles.
const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// Message is a single turn in a thread. Tool calls issued by the
// assistant and their results are kept as raw JSON so the conversation
// can be replayed to the model verbatim.
type Message struct {
	ID          string          `json:"id"`
	ThreadID    string          `json:"threadId"`
	Role        MessageRole     `json:"role"`
	Content     string          `json:"content,omitempty"`
	ToolCalls   json.RawMessage `json:"toolCalls,omitempty"`
	ToolResults json.RawMessage `json:"toolResults,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ThreadWithMessages is a thread hydrated with its messages in
// chronological order.
type ThreadWithMessages struct {
	Thread
	Messages []Message `json:"messages"`
}
