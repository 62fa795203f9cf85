package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

func newAssistantFixture(t *testing.T, llm driven.CompletionService) (*AssistantService, *crmStores) {
	t.Helper()
	stores := newCRMStores()

	search := NewSearchService(stores.contacts, stores.companies, stores.embeddings, nil)
	contacts := NewContactService(stores.contacts, stores.companies, nil)
	companies := NewCompanyService(stores.companies)
	interactions := NewInteractionService(stores.interactions, stores.contacts)
	notes := NewNoteService(stores.notes, stores.contacts, nil)
	notifications := NewNotificationService(stores.notifications, stores.contacts)

	service := NewAssistantService(stores.threads, llm,
		search, contacts, companies, interactions, notes, notifications)
	return service, stores
}

func collectEvents(events *[]driving.AssistantEvent) func(driving.AssistantEvent) {
	return func(e driving.AssistantEvent) {
		*events = append(*events, e)
	}
}

func eventTypes(events []driving.AssistantEvent) []string {
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func TestAssistantService_SendMessage_NoLLM(t *testing.T) {
	service, _ := newAssistantFixture(t, nil)

	_, err := service.SendMessage(context.Background(), "u1", "", "hello", nil)

	require.ErrorIs(t, err, domain.ErrAssistantUnavailable)
}

func TestAssistantService_SendMessage_EmptyContent(t *testing.T) {
	llm := &mockCompletion{title: "Chat"}
	service, _ := newAssistantFixture(t, llm)

	_, err := service.SendMessage(context.Background(), "u1", "", "   ", nil)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssistantService_SendMessage_NewThread(t *testing.T) {
	llm := &mockCompletion{
		turns: []*driven.ChatResult{{Content: "Hello! How can I help?"}},
		title: "Greeting",
	}
	service, stores := newAssistantFixture(t, llm)
	ctx := context.Background()

	var events []driving.AssistantEvent
	reply, err := service.SendMessage(ctx, "u1", "", "hi there", collectEvents(&events))

	require.NoError(t, err)
	require.NotEmpty(t, reply.ThreadID)
	assert.Equal(t, "Hello! How can I help?", reply.Message.Content)
	assert.Equal(t, domain.RoleAssistant, reply.Message.Role)

	thread, err := stores.threads.GetThread(ctx, "u1", reply.ThreadID)
	require.NoError(t, err)
	assert.Equal(t, "Greeting", thread.Name)
	require.Len(t, thread.Messages, 2)
	assert.Equal(t, domain.RoleUser, thread.Messages[0].Role)
	assert.Equal(t, "hi there", thread.Messages[0].Content)
	assert.Equal(t, domain.RoleAssistant, thread.Messages[1].Role)

	assert.Equal(t, []string{
		driving.AssistantEventText,
		driving.AssistantEventDone,
	}, eventTypes(events))
}

func TestAssistantService_SendMessage_ToolLoop(t *testing.T) {
	llm := &mockCompletion{
		turns: []*driven.ChatResult{
			{ToolCalls: []driven.ToolCall{{
				ID:        "call-1",
				Name:      "searchCompanies",
				Arguments: json.RawMessage(`{"query":"acme"}`),
			}}},
			{Content: "Found Acme Corp."},
		},
		title: "Company lookup",
	}
	service, stores := newAssistantFixture(t, llm)
	ctx := context.Background()

	seedCompany(t, stores.companies, domain.Company{ID: "co-1", UserID: "u1", Name: "Acme Corp"})

	var events []driving.AssistantEvent
	reply, err := service.SendMessage(ctx, "u1", "", "find acme", collectEvents(&events))

	require.NoError(t, err)
	assert.Equal(t, "Found Acme Corp.", reply.Message.Content)
	assert.NotEmpty(t, reply.Message.ToolCalls)
	assert.NotEmpty(t, reply.Message.ToolResults)

	assert.Equal(t, []string{
		driving.AssistantEventToolCall,
		driving.AssistantEventToolResult,
		driving.AssistantEventText,
		driving.AssistantEventDone,
	}, eventTypes(events))
	assert.Equal(t, "searchCompanies", events[0].ToolName)
	assert.Contains(t, string(events[1].Result), "Acme Corp")

	// The second model call carries the tool result back.
	require.Len(t, llm.seen, 2)
	last := llm.seen[1][len(llm.seen[1])-1]
	assert.Equal(t, "tool", last.Role)
	assert.Equal(t, "call-1", last.ToolCallID)
}

func TestAssistantService_SendMessage_StepCap(t *testing.T) {
	llm := &mockCompletion{
		turns: []*driven.ChatResult{
			{ToolCalls: []driven.ToolCall{{
				ID:        "call-loop",
				Name:      "searchCompanies",
				Arguments: json.RawMessage(`{"query":"acme"}`),
			}}},
		},
		title: "Runaway",
	}
	service, _ := newAssistantFixture(t, llm)

	reply, err := service.SendMessage(context.Background(), "u1", "", "loop forever", nil)

	require.NoError(t, err)
	assert.Equal(t, maxAssistantSteps, llm.chatCalls)
	assert.Empty(t, reply.Message.Content)
}

func TestAssistantService_SendMessage_ExistingThread(t *testing.T) {
	llm := &mockCompletion{
		turns: []*driven.ChatResult{{Content: "Sure."}},
	}
	service, stores := newAssistantFixture(t, llm)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, stores.threads.CreateThread(ctx, &domain.Thread{
		ID: "t1", UserID: "u1", Name: "Existing", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, stores.threads.AppendMessage(ctx, &domain.Message{
		ID: "m1", ThreadID: "t1", Role: domain.RoleUser, Content: "earlier question", CreatedAt: now,
	}))
	require.NoError(t, stores.threads.AppendMessage(ctx, &domain.Message{
		ID: "m2", ThreadID: "t1", Role: domain.RoleAssistant, Content: "earlier answer", CreatedAt: now,
	}))

	reply, err := service.SendMessage(ctx, "u1", "t1", "follow-up", nil)

	require.NoError(t, err)
	assert.Equal(t, "t1", reply.ThreadID)

	// System prompt, two history turns, then the new message.
	require.Len(t, llm.seen, 1)
	msgs := llm.seen[0]
	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "earlier question", msgs[1].Content)
	assert.Equal(t, "earlier answer", msgs[2].Content)
	assert.Equal(t, "follow-up", msgs[3].Content)
}

func TestAssistantService_SendMessage_UnknownThread(t *testing.T) {
	llm := &mockCompletion{
		turns: []*driven.ChatResult{{Content: "Sure."}},
	}
	service, _ := newAssistantFixture(t, llm)

	_, err := service.SendMessage(context.Background(), "u1", "missing", "hello", nil)

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssistantService_SendMessage_NamingFallback(t *testing.T) {
	llm := &mockCompletion{
		turns:    []*driven.ChatResult{{Content: "Done."}},
		titleErr: errors.New("model busy"),
	}
	service, stores := newAssistantFixture(t, llm)
	ctx := context.Background()

	long := strings.Repeat("remind me about the quarterly review ", 4)
	reply, err := service.SendMessage(ctx, "u1", "", long, nil)

	require.NoError(t, err)
	thread, err := stores.threads.GetThread(ctx, "u1", reply.ThreadID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(thread.Name)), threadNameMaxLen)
	assert.True(t, strings.HasPrefix(long, thread.Name))
}
