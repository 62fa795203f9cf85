package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// threadStore implements driven.ThreadStore.
type threadStore struct {
	store *Store
}

var _ driven.ThreadStore = (*threadStore)(nil)

// CreateThread stores a new thread.
func (s *threadStore) CreateThread(ctx context.Context, thread *domain.Thread) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO threads (id, user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, thread.ID, thread.UserID, thread.Name, thread.CreatedAt, thread.UpdatedAt)

	if err != nil {
		return fmt.Errorf("inserting thread: %w", err)
	}
	return nil
}

// GetThread retrieves a thread with its messages in chronological order.
func (s *threadStore) GetThread(ctx context.Context, userID, id string) (*domain.ThreadWithMessages, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM threads WHERE id = ? AND user_id = ?
	`, id, userID)

	var thread domain.ThreadWithMessages
	if err := row.Scan(&thread.ID, &thread.UserID, &thread.Name,
		&thread.CreatedAt, &thread.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning thread: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, thread_id, role, content, tool_calls, tool_results, created_at
		FROM messages WHERE thread_id = ?
		ORDER BY created_at ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	thread.Messages = []domain.Message{}
	for rows.Next() {
		var msg domain.Message
		var content, toolCalls, toolResults sql.NullString
		if err := rows.Scan(&msg.ID, &msg.ThreadID, &msg.Role, &content,
			&toolCalls, &toolResults, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.Content = content.String
		if toolCalls.Valid {
			msg.ToolCalls = []byte(toolCalls.String)
		}
		if toolResults.Valid {
			msg.ToolResults = []byte(toolResults.String)
		}
		thread.Messages = append(thread.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}

	return &thread, nil
}

// ListThreads returns a page of threads, most recently updated first,
// plus the total row count.
func (s *threadStore) ListThreads(ctx context.Context, userID string, page domain.PageParams) ([]domain.Thread, int64, error) {
	var total int64
	if err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM threads WHERE user_id = ?", userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting threads: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, user_id, name, created_at, updated_at
		FROM threads WHERE user_id = ?
		ORDER BY updated_at DESC LIMIT ? OFFSET ?
	`, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying threads: %w", err)
	}
	defer rows.Close()

	var threads []domain.Thread
	for rows.Next() {
		var thread domain.Thread
		if err := rows.Scan(&thread.ID, &thread.UserID, &thread.Name,
			&thread.CreatedAt, &thread.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning thread: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating threads: %w", err)
	}

	return threads, total, nil
}

// RenameThread updates a thread's title.
func (s *threadStore) RenameThread(ctx context.Context, userID, id, title string) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE threads SET name = ?, updated_at = ? WHERE id = ? AND user_id = ?
	`, title, time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("renaming thread: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TouchThread bumps a thread's updated time so it sorts first.
func (s *threadStore) TouchThread(ctx context.Context, userID, id string) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE threads SET updated_at = ? WHERE id = ? AND user_id = ?
	`, time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("touching thread: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteThread removes a thread; messages cascade with it.
func (s *threadStore) DeleteThread(ctx context.Context, userID, id string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM threads WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting thread: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendMessage stores a message at the end of a thread.
func (s *threadStore) AppendMessage(ctx context.Context, message *domain.Message) error {
	var toolCalls, toolResults any
	if len(message.ToolCalls) > 0 {
		toolCalls = string(message.ToolCalls)
	}
	if len(message.ToolResults) > 0 {
		toolResults = string(message.ToolResults)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO messages (id, thread_id, role, content, tool_calls, tool_results, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, message.ID, message.ThreadID, message.Role, nullString(message.Content),
		toolCalls, toolResults, message.CreatedAt)

	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}
