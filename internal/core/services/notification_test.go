package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

func seedNotification(t *testing.T, stores *crmStores, n domain.Notification) domain.Notification {
	t.Helper()
	n.CreatedAt = time.Now().UTC()
	require.NoError(t, stores.notifications.Create(context.Background(), &n))
	return n
}

func TestNotificationService_Create(t *testing.T) {
	stores := newCRMStores()
	service := NewNotificationService(stores.notifications, stores.contacts)
	ctx := context.Background()

	seedContact(t, stores.contacts, domain.Contact{ID: "c1", UserID: "u1", FirstName: "Alex"})

	due := time.Now().Add(48 * time.Hour)
	notification, err := service.Create(ctx, "u1", driving.CreateNotificationInput{
		ContactID: "c1",
		Type:      domain.NotificationFollowUpCall,
		Title:     "  Call Alex back ",
		DueDate:   &due,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, notification.ID)
	assert.Equal(t, "Call Alex back", notification.Title)
	assert.False(t, notification.IsCompleted)
	require.NotNil(t, notification.DueDate)
	assert.Equal(t, due.UTC(), *notification.DueDate)
}

func TestNotificationService_Create_Validation(t *testing.T) {
	stores := newCRMStores()
	service := NewNotificationService(stores.notifications, stores.contacts)
	ctx := context.Background()

	_, err := service.Create(ctx, "u1", driving.CreateNotificationInput{
		Type: domain.NotificationGeneral,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "missing title")

	_, err = service.Create(ctx, "u1", driving.CreateNotificationInput{
		Type:  "reminder",
		Title: "something",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "unknown type")

	_, err = service.Create(ctx, "u1", driving.CreateNotificationInput{
		Type:      domain.NotificationGeneral,
		Title:     "something",
		ContactID: "missing",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "unknown contact")
}

func TestNotificationService_List_StatusViews(t *testing.T) {
	stores := newCRMStores()
	service := NewNotificationService(stores.notifications, stores.contacts)
	ctx := context.Background()

	past := time.Now().UTC().Add(-48 * time.Hour)
	future := time.Now().UTC().Add(48 * time.Hour)

	seedNotification(t, stores, domain.Notification{
		ID: "n-overdue", UserID: "u1", Type: domain.NotificationGeneral,
		Title: "Overdue", DueDate: &past,
	})
	seedNotification(t, stores, domain.Notification{
		ID: "n-upcoming", UserID: "u1", Type: domain.NotificationGeneral,
		Title: "Upcoming", DueDate: &future,
	})
	seedNotification(t, stores, domain.Notification{
		ID: "n-done", UserID: "u1", Type: domain.NotificationGeneral,
		Title: "Done", IsCompleted: true,
	})

	pending, err := service.List(ctx, "u1", "", domain.PageParams{})
	require.NoError(t, err)
	// Completed notifications never appear; due dates sort ascending.
	require.Len(t, pending.Data, 2)
	assert.Equal(t, "n-overdue", pending.Data[0].ID)
	assert.Equal(t, "n-upcoming", pending.Data[1].ID)

	overdue, err := service.List(ctx, "u1", domain.NotificationOverdue, domain.PageParams{})
	require.NoError(t, err)
	require.Len(t, overdue.Data, 1)
	assert.Equal(t, "n-overdue", overdue.Data[0].ID)

	upcoming, err := service.List(ctx, "u1", domain.NotificationUpcoming, domain.PageParams{})
	require.NoError(t, err)
	require.Len(t, upcoming.Data, 1)
	assert.Equal(t, "n-upcoming", upcoming.Data[0].ID)
}

func TestNotificationService_List_UnknownStatus(t *testing.T) {
	stores := newCRMStores()
	service := NewNotificationService(stores.notifications, stores.contacts)

	_, err := service.List(context.Background(), "u1", "snoozed", domain.PageParams{})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNotificationService_Complete(t *testing.T) {
	stores := newCRMStores()
	service := NewNotificationService(stores.notifications, stores.contacts)
	ctx := context.Background()

	seedNotification(t, stores, domain.Notification{
		ID: "n1", UserID: "u1", Type: domain.NotificationGeneral, Title: "Follow up",
	})

	completed, err := service.Complete(ctx, "u1", "n1")

	require.NoError(t, err)
	assert.True(t, completed.IsCompleted)
	require.NotNil(t, completed.CompletedAt)
}

func TestNotificationService_Update_ReopenClearsCompletedAt(t *testing.T) {
	stores := newCRMStores()
	service := NewNotificationService(stores.notifications, stores.contacts)
	ctx := context.Background()

	seedNotification(t, stores, domain.Notification{
		ID: "n1", UserID: "u1", Type: domain.NotificationGeneral, Title: "Follow up",
	})

	_, err := service.Complete(ctx, "u1", "n1")
	require.NoError(t, err)

	open := false
	reopened, err := service.Update(ctx, "u1", "n1", driving.UpdateNotificationInput{
		IsCompleted: &open,
	})

	require.NoError(t, err)
	assert.False(t, reopened.IsCompleted)
	assert.Nil(t, reopened.CompletedAt)
}

func TestNotificationService_Delete(t *testing.T) {
	stores := newCRMStores()
	service := NewNotificationService(stores.notifications, stores.contacts)
	ctx := context.Background()

	seedNotification(t, stores, domain.Notification{
		ID: "n1", UserID: "u1", Type: domain.NotificationGeneral, Title: "Follow up",
	})

	require.NoError(t, service.Delete(ctx, "u1", "n1"))
	require.ErrorIs(t, service.Delete(ctx, "u1", "n1"), domain.ErrNotFound)
}
