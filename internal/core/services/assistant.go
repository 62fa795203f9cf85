package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Ensure AssistantService implements the interface.
var _ driving.AssistantService = (*AssistantService)(nil)

// maxAssistantSteps bounds the tool loop. A turn that still wants tools
// after this many model calls is cut off with whatever text it has.
const maxAssistantSteps = 10

// threadNameMaxLen caps auto-generated thread titles.
const threadNameMaxLen = 60

const systemPrompt = `You are an intelligent CRM assistant that helps users manage their contacts, companies, interactions, and follow-ups. You have access to tools that can search, create, update, and delete CRM data.

Core principles:
1. All data is automatically scoped to the current user. You can only access and modify the user's own data.
2. ALWAYS search before creating new contacts or companies to avoid duplicates.
3. When users make compound requests (e.g. "I called John and need to follow up next week"), execute ALL relevant actions in sequence: log the interaction, create the follow-up notification, and update contact info if new details were mentioned.
4. Pass dates to tools as ISO 8601 timestamps. Resolve relative dates like "tomorrow" or "next Tuesday" yourself before calling a tool.

Deletion flow. Never delete without explicit user confirmation:
1. When the user asks to delete, call deleteContact or deleteCompany first and present its confirmation message.
2. Only call confirmDeleteContact or confirmDeleteCompany after the user says "yes", "confirm", "delete it", or similar.
3. If the user says "no", "cancel", or "nevermind", do not proceed.

When search returns multiple matches, list the candidates with distinguishing info (email, company, job title) and ask which one the user meant. Never guess.

ALWAYS provide a text response after using tools. Be concise, confirm actions taken, and when presenting data format it clearly.`

// storedToolCall is the persisted shape of one tool invocation.
type storedToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// storedToolResult is the persisted shape of one tool result.
type storedToolResult struct {
	ToolCallID string          `json:"toolCallId"`
	ToolName   string          `json:"toolName"`
	Result     json.RawMessage `json:"result"`
}

// AssistantService runs the CRM assistant: a bounded tool-calling loop
// against the completion provider, persisting each turn to a thread.
type AssistantService struct {
	threads driven.ThreadStore
	llm     driven.CompletionService
	tools   *toolset
}

// NewAssistantService creates the assistant. llm may be nil, in which
// case every call reports the assistant as unavailable.
func NewAssistantService(
	threads driven.ThreadStore,
	llm driven.CompletionService,
	search driving.SearchService,
	contacts driving.ContactService,
	companies driving.CompanyService,
	interactions driving.InteractionService,
	notes driving.NoteService,
	notifications driving.NotificationService,
) *AssistantService {
	return &AssistantService{
		threads: threads,
		llm:     llm,
		tools:   newToolset(search, contacts, companies, interactions, notes, notifications),
	}
}

// SendMessage appends the user's message to the thread, runs the model
// loop until it stops calling tools and persists and returns the
// assistant's reply.
func (s *AssistantService) SendMessage(ctx context.Context, userID, threadID, content string, sink func(driving.AssistantEvent)) (*driving.AssistantReply, error) {
	if s.llm == nil {
		return nil, domain.ErrAssistantUnavailable
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", domain.ErrInvalidInput)
	}
	if sink == nil {
		sink = func(driving.AssistantEvent) {}
	}

	history, threadID, err := s.loadOrCreateThread(ctx, userID, threadID, content)
	if err != nil {
		return nil, err
	}
	userMsg := &domain.Message{
		ID:        uuid.NewString(),
		ThreadID:  threadID,
		Role:      domain.RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.threads.AppendMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("storing user message: %w", err)
	}

	msgs := make([]driven.ChatMessage, 0, len(history)+2)
	msgs = append(msgs, driven.ChatMessage{Role: "system", Content: systemPrompt})
	msgs = append(msgs, history...)
	msgs = append(msgs, driven.ChatMessage{Role: "user", Content: content})

	var (
		fullText    strings.Builder
		toolCalls   []storedToolCall
		toolResults []storedToolResult
	)

	for step := 0; step < maxAssistantSteps; step++ {
		result, err := s.llm.Chat(ctx, msgs, s.tools.defs())
		if err != nil {
			return nil, fmt.Errorf("assistant completion: %w", err)
		}

		if result.Content != "" {
			if fullText.Len() > 0 {
				fullText.WriteString("\n\n")
			}
			fullText.WriteString(result.Content)
			sink(driving.AssistantEvent{Type: driving.AssistantEventText, Text: result.Content})
		}

		if len(result.ToolCalls) == 0 {
			break
		}

		msgs = append(msgs, driven.ChatMessage{
			Role:      "assistant",
			Content:   result.Content,
			ToolCalls: result.ToolCalls,
		})

		for _, call := range result.ToolCalls {
			sink(driving.AssistantEvent{
				Type:     driving.AssistantEventToolCall,
				ToolName: call.Name,
				Args:     call.Arguments,
			})

			toolResult := s.tools.dispatch(ctx, userID, call)

			sink(driving.AssistantEvent{
				Type:     driving.AssistantEventToolResult,
				ToolName: call.Name,
				Result:   toolResult,
			})

			toolCalls = append(toolCalls, storedToolCall{
				ID:        call.ID,
				Name:      call.Name,
				Arguments: call.Arguments,
			})
			toolResults = append(toolResults, storedToolResult{
				ToolCallID: call.ID,
				ToolName:   call.Name,
				Result:     toolResult,
			})

			msgs = append(msgs, driven.ChatMessage{
				Role:       "tool",
				Content:    string(toolResult),
				ToolCallID: call.ID,
			})
		}
	}

	assistantMsg := &domain.Message{
		ID:        uuid.NewString(),
		ThreadID:  threadID,
		Role:      domain.RoleAssistant,
		Content:   fullText.String(),
		CreatedAt: time.Now().UTC(),
	}
	if len(toolCalls) > 0 {
		assistantMsg.ToolCalls = mustJSON(toolCalls)
		assistantMsg.ToolResults = mustJSON(toolResults)
	}
	if err := s.threads.AppendMessage(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("storing assistant message: %w", err)
	}
	if err := s.threads.TouchThread(ctx, userID, threadID); err != nil {
		slog.Warn("failed to touch thread", "thread_id", threadID, "error", err)
	}

	sink(driving.AssistantEvent{
		Type:     driving.AssistantEventDone,
		ThreadID: threadID,
		Message:  assistantMsg.Content,
	})

	return &driving.AssistantReply{ThreadID: threadID, Message: *assistantMsg}, nil
}

// loadOrCreateThread returns the replayable history for an existing
// thread, or creates a fresh thread named from the first message.
func (s *AssistantService) loadOrCreateThread(ctx context.Context, userID, threadID, content string) ([]driven.ChatMessage, string, error) {
	if threadID != "" {
		thread, err := s.threads.GetThread(ctx, userID, threadID)
		if err != nil {
			return nil, "", err
		}

		history := make([]driven.ChatMessage, 0, len(thread.Messages))
		for _, msg := range thread.Messages {
			// Tool plumbing of past turns is not replayed; the
			// assistant text already states what was done.
			if msg.Role == domain.RoleTool || msg.Content == "" {
				continue
			}
			history = append(history, driven.ChatMessage{
				Role:    string(msg.Role),
				Content: msg.Content,
			})
		}
		return history, threadID, nil
	}

	now := time.Now().UTC()
	thread := &domain.Thread{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      s.nameThread(ctx, content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.threads.CreateThread(ctx, thread); err != nil {
		return nil, "", fmt.Errorf("creating thread: %w", err)
	}
	return nil, thread.ID, nil
}

// nameThread asks the model for a short title, falling back to a
// truncation of the message when that fails.
func (s *AssistantService) nameThread(ctx context.Context, content string) string {
	prompt := fmt.Sprintf(
		"Generate a short title (at most 6 words, no quotes) for a conversation that starts with this message:\n\n%s",
		content)

	name, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("thread naming failed, using message prefix", "error", err)
		name = content
	}
	name = strings.TrimSpace(strings.Trim(strings.TrimSpace(name), `"`))
	if name == "" {
		name = content
	}
	if runes := []rune(name); len(runes) > threadNameMaxLen {
		name = string(runes[:threadNameMaxLen])
	}
	return name
}
