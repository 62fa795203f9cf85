package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

// createTestUser inserts a user row to satisfy foreign key constraints.
func createTestUser(t *testing.T, store *Store, userID string) {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.UserStore().Upsert(context.Background(), &domain.User{
		ID:        userID,
		Email:     userID + "@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func createTestContact(t *testing.T, store *Store, userID, id, firstName, companyID string) {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.ContactStore().Create(context.Background(), &domain.Contact{
		ID:        id,
		UserID:    userID,
		FirstName: firstName,
		CompanyID: companyID,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "anchor.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	assert.NoError(t, store.Ping(context.Background()))
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	createTestUser(t, store, "u1")
	require.NoError(t, store.Close())

	// Reopening the same database reruns nothing and loses nothing.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	user, err := store.UserStore().Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", user.Email)
}

func TestUserStore_UpsertPreservesCreatedAt(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	original, err := store.UserStore().Get(ctx, "u1")
	require.NoError(t, err)

	later := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	require.NoError(t, store.UserStore().Upsert(ctx, &domain.User{
		ID:        "u1",
		Email:     "updated@example.com",
		CreatedAt: later,
		UpdatedAt: later,
	}))

	updated, err := store.UserStore().Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "updated@example.com", updated.Email)
	assert.WithinDuration(t, original.CreatedAt, updated.CreatedAt, time.Second)
}

func TestContactStore_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	now := time.Now().UTC().Truncate(time.Second)
	contact := &domain.Contact{
		ID:        "c1",
		UserID:    "u1",
		FirstName: "Alex",
		LastName:  "Rivera",
		Email:     "alex@acme.io",
		JobTitle:  "CTO",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.ContactStore().Create(ctx, contact))

	got, err := store.ContactStore().Get(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "Alex", got.FirstName)
	assert.Equal(t, "alex@acme.io", got.Email)
	assert.Empty(t, got.Phone)
	assert.WithinDuration(t, now, got.CreatedAt, time.Second)
}

func TestContactStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.ContactStore().Get(context.Background(), "u1", "missing")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactStore_Get_UserIsolation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	createTestUser(t, store, "u2")
	createTestContact(t, store, "u1", "c1", "Alex", "")

	_, err := store.ContactStore().Get(ctx, "u2", "c1")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactStore_GetWithCompany(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.CompanyStore().Create(ctx, &domain.Company{
		ID: "co-1", UserID: "u1", Name: "Acme Corp", CreatedAt: now, UpdatedAt: now,
	}))
	createTestContact(t, store, "u1", "c1", "Alex", "co-1")

	occurred := now.Add(-time.Hour)
	require.NoError(t, store.InteractionStore().Create(ctx, &domain.Interaction{
		ID: "i1", UserID: "u1", ContactID: "c1", Type: domain.InteractionCall,
		OccurredAt: occurred, CreatedAt: now,
	}))

	got, err := store.ContactStore().GetWithCompany(ctx, "u1", "c1")
	require.NoError(t, err)
	require.NotNil(t, got.Company)
	assert.Equal(t, "Acme Corp", got.Company.Name)
	require.NotNil(t, got.LastInteractionAt)
	assert.WithinDuration(t, occurred, *got.LastInteractionAt, time.Second)
}

func TestContactStore_List_QueryFilterAndSort(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	createTestContact(t, store, "u1", "c1", "Charlie", "")
	createTestContact(t, store, "u1", "c2", "alex", "")
	createTestContact(t, store, "u1", "c3", "Bonnie", "")

	contacts, total, err := store.ContactStore().List(ctx, "u1", domain.ContactListOptions{
		SortBy: domain.ContactSortByName,
		Order:  domain.SortAsc,
		Page:   domain.PageParams{Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, contacts, 3)
	// Case-insensitive name sort.
	assert.Equal(t, "alex", contacts[0].FirstName)
	assert.Equal(t, "Bonnie", contacts[1].FirstName)
	assert.Equal(t, "Charlie", contacts[2].FirstName)

	filtered, total, err := store.ContactStore().List(ctx, "u1", domain.ContactListOptions{
		Query: "bonn",
		Page:  domain.PageParams{Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, filtered, 1)
	assert.Equal(t, "c3", filtered[0].ID)
}

func TestContactStore_Delete_CascadesDependents(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	createTestContact(t, store, "u1", "c1", "Alex", "")

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.InteractionStore().Create(ctx, &domain.Interaction{
		ID: "i1", UserID: "u1", ContactID: "c1", Type: domain.InteractionCall,
		OccurredAt: now, CreatedAt: now,
	}))
	require.NoError(t, store.NoteStore().Create(ctx, &domain.Note{
		ID: "n1", UserID: "u1", ContactID: "c1", Content: "note", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.NotificationStore().Create(ctx, &domain.Notification{
		ID: "nf1", UserID: "u1", ContactID: "c1", Type: domain.NotificationGeneral,
		Title: "Follow up", CreatedAt: now,
	}))

	require.NoError(t, store.ContactStore().Delete(ctx, "u1", "c1"))

	_, err := store.InteractionStore().Get(ctx, "u1", "i1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.NoteStore().Get(ctx, "u1", "n1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.NotificationStore().Get(ctx, "u1", "nf1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyStore_Delete_DetachesContacts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.CompanyStore().Create(ctx, &domain.Company{
		ID: "co-1", UserID: "u1", Name: "Acme Corp", CreatedAt: now, UpdatedAt: now,
	}))
	createTestContact(t, store, "u1", "c1", "Alex", "co-1")

	require.NoError(t, store.CompanyStore().Delete(ctx, "u1", "co-1"))

	contact, err := store.ContactStore().Get(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Empty(t, contact.CompanyID)
}

func TestNotificationStore_List_StatusViews(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	now := time.Now().UTC().Truncate(time.Second)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	notifications := []domain.Notification{
		{ID: "n-overdue", UserID: "u1", Type: domain.NotificationGeneral, Title: "Overdue", DueDate: &past, CreatedAt: now},
		{ID: "n-upcoming", UserID: "u1", Type: domain.NotificationGeneral, Title: "Upcoming", DueDate: &future, CreatedAt: now},
		{ID: "n-undated", UserID: "u1", Type: domain.NotificationGeneral, Title: "Undated", CreatedAt: now},
		{ID: "n-done", UserID: "u1", Type: domain.NotificationGeneral, Title: "Done", IsCompleted: true, CreatedAt: now},
	}
	for i := range notifications {
		require.NoError(t, store.NotificationStore().Create(ctx, &notifications[i]))
	}

	page := domain.PageParams{Limit: 10}

	pending, total, err := store.NotificationStore().List(ctx, "u1", domain.NotificationPending, page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, pending, 3)
	// Due dates ascend; undated rows sort last.
	assert.Equal(t, "n-overdue", pending[0].ID)
	assert.Equal(t, "n-upcoming", pending[1].ID)
	assert.Equal(t, "n-undated", pending[2].ID)

	overdue, _, err := store.NotificationStore().List(ctx, "u1", domain.NotificationOverdue, page)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "n-overdue", overdue[0].ID)

	upcoming, _, err := store.NotificationStore().List(ctx, "u1", domain.NotificationUpcoming, page)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "n-upcoming", upcoming[0].ID)
}

func TestNotificationStore_CountByStatus(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	now := time.Now().UTC().Truncate(time.Second)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	notifications := []domain.Notification{
		{ID: "n-overdue", UserID: "u1", Type: domain.NotificationGeneral, Title: "Overdue", DueDate: &past, CreatedAt: now},
		{ID: "n-upcoming", UserID: "u1", Type: domain.NotificationGeneral, Title: "Upcoming", DueDate: &future, CreatedAt: now},
		{ID: "n-undated", UserID: "u1", Type: domain.NotificationGeneral, Title: "Undated", CreatedAt: now},
		{ID: "n-done", UserID: "u1", Type: domain.NotificationGeneral, Title: "Done", IsCompleted: true, CreatedAt: now},
	}
	for i := range notifications {
		require.NoError(t, store.NotificationStore().Create(ctx, &notifications[i]))
	}

	pending, err := store.NotificationStore().CountByStatus(ctx, "u1", domain.NotificationPending)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pending)

	overdue, err := store.NotificationStore().CountByStatus(ctx, "u1", domain.NotificationOverdue)
	require.NoError(t, err)
	assert.Equal(t, int64(1), overdue)

	upcoming, err := store.NotificationStore().CountByStatus(ctx, "u1", domain.NotificationUpcoming)
	require.NoError(t, err)
	assert.Equal(t, int64(1), upcoming)
}

func TestNoteStore_Count(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	createTestUser(t, store, "u2")
	createTestContact(t, store, "u1", "c1", "Alex", "")
	createTestContact(t, store, "u2", "c2", "Priya", "")

	now := time.Now().UTC()
	require.NoError(t, store.NoteStore().Create(ctx, &domain.Note{
		ID: "note-1", UserID: "u1", ContactID: "c1", Content: "First", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.NoteStore().Create(ctx, &domain.Note{
		ID: "note-2", UserID: "u1", ContactID: "c1", Content: "Second", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.NoteStore().Create(ctx, &domain.Note{
		ID: "note-3", UserID: "u2", ContactID: "c2", Content: "Other user", CreatedAt: now, UpdatedAt: now,
	}))

	count, err := store.NoteStore().Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestEmbeddingStore_UpsertReplaces(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	now := time.Now().UTC().Truncate(time.Second)

	first := &domain.EmbeddingRecord{
		ID: "e1", UserID: "u1", EntityType: domain.EntityContact, EntityID: "c1",
		SourceText: "old text", Vector: []float32{1, 2, 3}, CreatedAt: now,
	}
	require.NoError(t, store.EmbeddingStore().Upsert(ctx, first))

	second := &domain.EmbeddingRecord{
		ID: "e2", UserID: "u1", EntityType: domain.EntityContact, EntityID: "c1",
		SourceText: "new text", Vector: []float32{4, 5, 6}, CreatedAt: now,
	}
	require.NoError(t, store.EmbeddingStore().Upsert(ctx, second))

	got, err := store.EmbeddingStore().GetByEntity(ctx, "u1", domain.EntityContact, "c1")
	require.NoError(t, err)
	assert.Equal(t, "new text", got.SourceText)
	assert.Equal(t, []float32{4, 5, 6}, got.Vector)

	records, err := store.EmbeddingStore().ListByUser(ctx, "u1", "")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestEmbeddingStore_DeleteByEntity_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	require.NoError(t, store.EmbeddingStore().Upsert(ctx, &domain.EmbeddingRecord{
		ID: "e1", UserID: "u1", EntityType: domain.EntityContact, EntityID: "c1",
		SourceText: "text", Vector: []float32{1}, CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, store.EmbeddingStore().DeleteByEntity(ctx, "u1", domain.EntityContact, "c1"))
	require.NoError(t, store.EmbeddingStore().DeleteByEntity(ctx, "u1", domain.EntityContact, "c1"))

	_, err := store.EmbeddingStore().GetByEntity(ctx, "u1", domain.EntityContact, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestThreadStore_MessagesInOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.ThreadStore().CreateThread(ctx, &domain.Thread{
		ID: "t1", UserID: "u1", Name: "Chat", CreatedAt: now, UpdatedAt: now,
	}))

	for i, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, store.ThreadStore().AppendMessage(ctx, &domain.Message{
			ID: id, ThreadID: "t1", Role: domain.RoleUser, Content: id,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}))
	}

	thread, err := store.ThreadStore().GetThread(ctx, "u1", "t1")
	require.NoError(t, err)
	require.Len(t, thread.Messages, 3)
	assert.Equal(t, "m1", thread.Messages[0].ID)
	assert.Equal(t, "m3", thread.Messages[2].ID)
}

func TestThreadStore_Delete_RemovesMessages(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	createTestUser(t, store, "u1")
	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.ThreadStore().CreateThread(ctx, &domain.Thread{
		ID: "t1", UserID: "u1", Name: "Chat", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.ThreadStore().AppendMessage(ctx, &domain.Message{
		ID: "m1", ThreadID: "t1", Role: domain.RoleUser, Content: "hi", CreatedAt: now,
	}))

	require.NoError(t, store.ThreadStore().DeleteThread(ctx, "u1", "t1"))

	_, err := store.ThreadStore().GetThread(ctx, "u1", "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVectorBytesRoundTrip(t *testing.T) {
	vec := []float32{0, 1.5, -2.25, 3.14159}

	got := bytesToVector(vectorToBytes(vec))

	assert.Equal(t, vec, got)
}
