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

func TestNoteService_Create(t *testing.T) {
	stores := newCRMStores()
	service := NewNoteService(stores.notes, stores.contacts, nil)
	ctx := context.Background()

	seedContact(t, stores.contacts, domain.Contact{ID: "c1", UserID: "u1", FirstName: "Alex"})

	note, err := service.Create(ctx, "u1", driving.CreateNoteInput{
		Content:   "  Met at the conference  ",
		ContactID: "c1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "Met at the conference", note.Content)
	assert.Equal(t, "c1", note.ContactID)
}

func TestNoteService_Create_RequiresContent(t *testing.T) {
	stores := newCRMStores()
	service := NewNoteService(stores.notes, stores.contacts, nil)

	_, err := service.Create(context.Background(), "u1", driving.CreateNoteInput{Content: "   "})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNoteService_Create_UnknownContact(t *testing.T) {
	stores := newCRMStores()
	service := NewNoteService(stores.notes, stores.contacts, nil)

	_, err := service.Create(context.Background(), "u1", driving.CreateNoteInput{
		Content:   "hello",
		ContactID: "missing",
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNoteService_Create_SchedulesContactIndexing(t *testing.T) {
	stores := newCRMStores()
	indexer := newMockIndexer()
	service := NewNoteService(stores.notes, stores.contacts, indexer)

	seedContact(t, stores.contacts, domain.Contact{ID: "c1", UserID: "u1", FirstName: "Alex"})

	_, err := service.Create(context.Background(), "u1", driving.CreateNoteInput{
		Content:   "Met at the conference",
		ContactID: "c1",
	})

	require.NoError(t, err)
	assert.Equal(t, "c1", waitForIndex(t, indexer))
}

func TestNoteService_List_FiltersByQuery(t *testing.T) {
	stores := newCRMStores()
	service := NewNoteService(stores.notes, stores.contacts, nil)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, stores.notes.Create(ctx, &domain.Note{
		ID: "n1", UserID: "u1", Content: "Discussed the merger", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, stores.notes.Create(ctx, &domain.Note{
		ID: "n2", UserID: "u1", Content: "Lunch follow-up", CreatedAt: now, UpdatedAt: now,
	}))

	page, err := service.List(ctx, "u1", domain.NoteFilters{Query: "MERGER"}, domain.PageParams{})

	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "n1", page.Data[0].ID)
}

func TestNoteService_Update(t *testing.T) {
	stores := newCRMStores()
	service := NewNoteService(stores.notes, stores.contacts, nil)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, stores.notes.Create(ctx, &domain.Note{
		ID: "n1", UserID: "u1", Content: "original", CreatedAt: now, UpdatedAt: now,
	}))

	updated, err := service.Update(ctx, "u1", "n1", "revised")

	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Content)

	_, err = service.Update(ctx, "u1", "n1", "   ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNoteService_Delete_SchedulesContactIndexing(t *testing.T) {
	stores := newCRMStores()
	indexer := newMockIndexer()
	service := NewNoteService(stores.notes, stores.contacts, indexer)
	ctx := context.Background()

	seedContact(t, stores.contacts, domain.Contact{ID: "c1", UserID: "u1", FirstName: "Alex"})
	now := time.Now().UTC()
	require.NoError(t, stores.notes.Create(ctx, &domain.Note{
		ID: "n1", UserID: "u1", ContactID: "c1", Content: "stale", CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, service.Delete(ctx, "u1", "n1"))

	_, err := service.Get(ctx, "u1", "n1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "c1", waitForIndex(t, indexer))
}
