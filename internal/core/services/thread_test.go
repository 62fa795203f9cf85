package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

func seedThread(t *testing.T, stores *crmStores, id, userID, name string, updatedAt time.Time) {
	t.Helper()
	require.NoError(t, stores.threads.CreateThread(context.Background(), &domain.Thread{
		ID: id, UserID: userID, Name: name,
		CreatedAt: updatedAt, UpdatedAt: updatedAt,
	}))
}

func TestThreadService_List_MostRecentFirst(t *testing.T) {
	stores := newCRMStores()
	service := NewThreadService(stores.threads)

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	seedThread(t, stores, "t1", "u1", "Oldest", base)
	seedThread(t, stores, "t2", "u1", "Newest", base.Add(2*time.Hour))
	seedThread(t, stores, "t3", "u1", "Middle", base.Add(time.Hour))
	seedThread(t, stores, "t4", "u2", "Other user", base.Add(3*time.Hour))

	page, err := service.List(context.Background(), "u1", domain.PageParams{})

	require.NoError(t, err)
	require.Len(t, page.Data, 3)
	assert.Equal(t, "t2", page.Data[0].ID)
	assert.Equal(t, "t3", page.Data[1].ID)
	assert.Equal(t, "t1", page.Data[2].ID)
}

func TestThreadService_Get_WithMessages(t *testing.T) {
	stores := newCRMStores()
	service := NewThreadService(stores.threads)
	ctx := context.Background()

	now := time.Now().UTC()
	seedThread(t, stores, "t1", "u1", "Chat", now)
	require.NoError(t, stores.threads.AppendMessage(ctx, &domain.Message{
		ID: "m1", ThreadID: "t1", Role: domain.RoleUser, Content: "hi", CreatedAt: now,
	}))
	require.NoError(t, stores.threads.AppendMessage(ctx, &domain.Message{
		ID: "m2", ThreadID: "t1", Role: domain.RoleAssistant, Content: "hello", CreatedAt: now,
	}))

	thread, err := service.Get(ctx, "u1", "t1")

	require.NoError(t, err)
	require.Len(t, thread.Messages, 2)
	assert.Equal(t, "m1", thread.Messages[0].ID)
	assert.Equal(t, "m2", thread.Messages[1].ID)
}

func TestThreadService_Rename(t *testing.T) {
	stores := newCRMStores()
	service := NewThreadService(stores.threads)
	ctx := context.Background()

	seedThread(t, stores, "t1", "u1", "Untitled", time.Now().UTC())

	thread, err := service.Rename(ctx, "u1", "t1", "  Pipeline review ")

	require.NoError(t, err)
	assert.Equal(t, "Pipeline review", thread.Name)

	_, err = service.Rename(ctx, "u1", "t1", "   ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Rename(ctx, "u1", "missing", "anything")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestThreadService_Delete(t *testing.T) {
	stores := newCRMStores()
	service := NewThreadService(stores.threads)
	ctx := context.Background()

	seedThread(t, stores, "t1", "u1", "Chat", time.Now().UTC())

	require.NoError(t, service.Delete(ctx, "u1", "t1"))

	_, err := service.Get(ctx, "u1", "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestThreadService_UserIsolation(t *testing.T) {
	stores := newCRMStores()
	service := NewThreadService(stores.threads)
	ctx := context.Background()

	seedThread(t, stores, "t1", "u1", "Private", time.Now().UTC())

	_, err := service.Get(ctx, "u2", "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = service.Delete(ctx, "u2", "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
