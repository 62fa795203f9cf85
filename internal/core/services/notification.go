package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Ensure NotificationService implements the interface.
var _ driving.NotificationService = (*NotificationService)(nil)

// NotificationService manages follow-up reminders.
type NotificationService struct {
	notifications driven.NotificationStore
	contacts      driven.ContactStore
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifications driven.NotificationStore, contacts driven.ContactStore) *NotificationService {
	return &NotificationService{notifications: notifications, contacts: contacts}
}

// Create validates and stores a new notification.
func (s *NotificationService) Create(ctx context.Context, userID string, input driving.CreateNotificationInput) (*domain.Notification, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: notification title is required", domain.ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown notification type %q", domain.ErrInvalidInput, input.Type)
	}
	if input.ContactID != "" {
		if _, err := s.contacts.Get(ctx, userID, input.ContactID); err != nil {
			return nil, fmt.Errorf("%w: contact %s does not exist", domain.ErrInvalidInput, input.ContactID)
		}
	}

	var dueDate *time.Time
	if input.DueDate != nil {
		d := input.DueDate.UTC()
		dueDate = &d
	}

	notification := &domain.Notification{
		ID:            uuid.NewString(),
		UserID:        userID,
		ContactID:     input.ContactID,
		InteractionID: input.InteractionID,
		Type:          input.Type,
		Title:         title,
		Description:   input.Description,
		DueDate:       dueDate,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}
	return notification, nil
}

// List returns a page of incomplete notifications for the given status
// view, ordered by due date.
func (s *NotificationService) List(ctx context.Context, userID string, status domain.NotificationStatus, page domain.PageParams) (domain.Page[domain.NotificationWithRefs], error) {
	if status == "" {
		status = domain.NotificationPending
	}
	switch status {
	case domain.NotificationPending, domain.NotificationUpcoming, domain.NotificationOverdue:
	default:
		return domain.Page[domain.NotificationWithRefs]{}, fmt.Errorf("%w: unknown notification status %q", domain.ErrInvalidInput, status)
	}

	page = page.Clamp()
	notifications, total, err := s.notifications.List(ctx, userID, status, page)
	if err != nil {
		return domain.Page[domain.NotificationWithRefs]{}, fmt.Errorf("listing notifications: %w", err)
	}
	return domain.NewPage(notifications, total, page), nil
}

// Update applies a partial update. Setting IsCompleted records the
// completion time; clearing it erases it.
func (s *NotificationService) Update(ctx context.Context, userID, id string, input driving.UpdateNotificationInput) (*domain.Notification, error) {
	notification, err := s.notifications.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: notification title cannot be empty", domain.ErrInvalidInput)
		}
		notification.Title = title
	}
	if input.Description != nil {
		notification.Description = *input.Description
	}
	if input.DueDate != nil {
		d := input.DueDate.UTC()
		notification.DueDate = &d
	}
	if input.IsCompleted != nil {
		notification.IsCompleted = *input.IsCompleted
		if *input.IsCompleted {
			now := time.Now().UTC()
			notification.CompletedAt = &now
		} else {
			notification.CompletedAt = nil
		}
	}

	if err := s.notifications.Update(ctx, notification); err != nil {
		return nil, fmt.Errorf("updating notification: %w", err)
	}
	return notification, nil
}

// Complete marks a notification done.
func (s *NotificationService) Complete(ctx context.Context, userID, id string) (*domain.Notification, error) {
	done := true
	return s.Update(ctx, userID, id, driving.UpdateNotificationInput{IsCompleted: &done})
}

// Delete removes a notification.
func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	return s.notifications.Delete(ctx, userID, id)
}
