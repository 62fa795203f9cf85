package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// Ensure NotificationStore implements the interface.
var _ driven.NotificationStore = (*NotificationStore)(nil)

// NotificationStore is an in-memory implementation of
// driven.NotificationStore.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications map[string]domain.Notification

	contacts     *ContactStore
	interactions *InteractionStore
}

// NewNotificationStore creates a new in-memory notification store.
func NewNotificationStore() *NotificationStore {
	return &NotificationStore{notifications: make(map[string]domain.Notification)}
}

// Attach wires sibling stores for hydration.
func (s *NotificationStore) Attach(contacts *ContactStore, interactions *InteractionStore) {
	s.contacts = contacts
	s.interactions = interactions
}

// Create stores a new notification.
func (s *NotificationStore) Create(_ context.Context, notification *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[notification.ID] = *notification
	return nil
}

// Get retrieves a notification by ID.
func (s *NotificationStore) Get(_ context.Context, userID, id string) (*domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notification, ok := s.notifications[id]
	if !ok || notification.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &notification, nil
}

// List returns a page of incomplete notifications matching the status
// view, due soonest first with undated ones last, plus the total count.
func (s *NotificationStore) List(ctx context.Context, userID string, status domain.NotificationStatus, page domain.PageParams) ([]domain.NotificationWithRefs, int64, error) {
	now := time.Now()

	s.mu.RLock()
	var all []domain.Notification
	for _, notification := range s.notifications {
		if notification.UserID != userID || notification.IsCompleted {
			continue
		}
		switch status {
		case domain.NotificationUpcoming:
			if notification.DueDate == nil || notification.DueDate.Before(now) {
				continue
			}
		case domain.NotificationOverdue:
			if notification.DueDate == nil || !notification.DueDate.Before(now) {
				continue
			}
		}
		all = append(all, notification)
	}
	s.mu.RUnlock()

	sortByDueDate(all)

	total := int64(len(all))
	all = window(all, page)

	result := make([]domain.NotificationWithRefs, len(all))
	for i, notification := range all {
		result[i] = domain.NotificationWithRefs{Notification: notification}
		if s.contacts != nil && notification.ContactID != "" {
			if contact, err := s.contacts.Get(ctx, userID, notification.ContactID); err == nil {
				result[i].Contact = contact
			}
		}
		if s.interactions != nil && notification.InteractionID != "" {
			if interaction, err := s.interactions.Get(ctx, userID, notification.InteractionID); err == nil {
				result[i].Interaction = interaction
			}
		}
	}
	return result, total, nil
}

// Update modifies an existing notification.
func (s *NotificationStore) Update(_ context.Context, notification *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.notifications[notification.ID]
	if !ok || existing.UserID != notification.UserID {
		return domain.ErrNotFound
	}
	s.notifications[notification.ID] = *notification
	return nil
}

// Delete removes a notification.
func (s *NotificationStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notification, ok := s.notifications[id]
	if !ok || notification.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.notifications, id)
	return nil
}

// CountByStatus returns the number of incomplete notifications in the
// given due-date view.
func (s *NotificationStore) CountByStatus(_ context.Context, userID string, status domain.NotificationStatus) (int64, error) {
	now := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, notification := range s.notifications {
		if notification.UserID != userID || notification.IsCompleted {
			continue
		}
		switch status {
		case domain.NotificationUpcoming:
			if notification.DueDate == nil || notification.DueDate.Before(now) {
				continue
			}
		case domain.NotificationOverdue:
			if notification.DueDate == nil || !notification.DueDate.Before(now) {
				continue
			}
		}
		count++
	}
	return count, nil
}

func (s *NotificationStore) pendingByContact(userID, contactID string) []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.Notification{}
	for _, notification := range s.notifications {
		if notification.UserID == userID && notification.ContactID == contactID && !notification.IsCompleted {
			result = append(result, notification)
		}
	}
	sortByDueDate(result)
	return result
}

// sortByDueDate orders notifications due soonest first with undated
// ones last, matching the SQLite store.
func sortByDueDate(notifications []domain.Notification) {
	sort.SliceStable(notifications, func(i, j int) bool {
		a, b := notifications[i].DueDate, notifications[j].DueDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
}

func (s *NotificationStore) deleteByContact(userID, contactID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, notification := range s.notifications {
		if notification.UserID == userID && notification.ContactID == contactID {
			delete(s.notifications, id)
		}
	}
}
