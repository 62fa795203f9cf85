package driven

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// NotificationStore persists follow-up reminders.
type NotificationStore interface {
	// Create stores a new notification.
	Create(ctx context.Context, notification *domain.Notification) error

	// Get retrieves a notification by ID.
	Get(ctx context.Context, userID, id string) (*domain.Notification, error)

	// List returns a page of incomplete notifications matching the
	// status view, ordered by due date, plus the total row count.
	List(ctx context.Context, userID string, status domain.NotificationStatus, page domain.PageParams) ([]domain.NotificationWithRefs, int64, error)

	// Update modifies an existing notification.
	Update(ctx context.Context, notification *domain.Notification) error

	// Delete removes a notification.
	Delete(ctx context.Context, userID, id string) error

	// CountByStatus returns the number of incomplete notifications in
	// the given due-date view, evaluated against the current time.
	CountByStatus(ctx context.Context, userID string, status domain.NotificationStatus) (int64, error)
}
