package driving

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// ThreadService manages assistant conversation threads. New threads are
// created by AssistantService when a message arrives without one.
type ThreadService interface {
	// Get retrieves a thread with its messages in order.
	Get(ctx context.Context, userID, id string) (*domain.ThreadWithMessages, error)

	// List returns a page of threads, most recently updated first.
	List(ctx context.Context, userID string, page domain.PageParams) (domain.Page[domain.Thread], error)

	// Rename updates a thread's title.
	Rename(ctx context.Context, userID, id, title string) (*domain.Thread, error)

	// Delete removes a thread and its messages.
	Delete(ctx context.Context, userID, id string) error
}
