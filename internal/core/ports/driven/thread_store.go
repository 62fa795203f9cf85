package driven

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// ThreadStore persists assistant conversations and their messages.
type ThreadStore interface {
	// CreateThread stores a new thread.
	CreateThread(ctx context.Context, thread *domain.Thread) error

	// GetThread retrieves a thread with its messages in chronological
	// order.
	GetThread(ctx context.Context, userID, id string) (*domain.ThreadWithMessages, error)

	// ListThreads returns a page of threads, most recently updated
	// first, plus the total row count.
	ListThreads(ctx context.Context, userID string, page domain.PageParams) ([]domain.Thread, int64, error)

	// RenameThread updates a thread's title.
	RenameThread(ctx context.Context, userID, id, title string) error

	// TouchThread bumps a thread's updated time so it sorts first.
	TouchThread(ctx context.Context, userID, id string) error

	// DeleteThread removes a thread and its messages.
	DeleteThread(ctx context.Context, userID, id string) error

	// AppendMessage stores a message at the end of a thread.
	AppendMessage(ctx context.Context, message *domain.Message) error
}
