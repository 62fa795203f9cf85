package driving

import (
	"context"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// CreateNotificationInput carries the fields for a new follow-up
// reminder. Type and Title are required.
type CreateNotificationInput struct {
	ContactID     string
	InteractionID string
	Type          domain.NotificationType
	Title         string
	Description   string
	DueDate       *time.Time
}

// UpdateNotificationInput carries a partial notification update. Nil
// fields are left untouched.
type UpdateNotificationInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	IsCompleted *bool
}

// NotificationService manages follow-up reminders.
type NotificationService interface {
	// Create validates and stores a new notification.
	Create(ctx context.Context, userID string, input CreateNotificationInput) (*domain.Notification, error)

	// List returns a page of incomplete notifications for the given
	// status view, ordered by due date.
	List(ctx context.Context, userID string, status domain.NotificationStatus, page domain.PageParams) (domain.Page[domain.NotificationWithRefs], error)

	// Update applies a partial update. Setting IsCompleted records the
	// completion time; clearing it erases it.
	Update(ctx context.Context, userID, id string, input UpdateNotificationInput) (*domain.Notification, error)

	// Complete marks a notification done.
	Complete(ctx context.Context, userID, id string) (*domain.Notification, error)

	// Delete removes a notification.
	Delete(ctx context.Context, userID, id string) error
}
