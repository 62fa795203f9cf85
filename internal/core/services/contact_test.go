package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// mockIndexer implements driving.IndexerService for testing. Calls are
// reported on the channels so tests can wait for background indexing.
type mockIndexer struct {
	mu      sync.Mutex
	indexed chan string
	removed []string
}

func newMockIndexer() *mockIndexer {
	return &mockIndexer{indexed: make(chan string, 16)}
}

func (m *mockIndexer) IndexContact(_ context.Context, _, contactID string) error {
	m.indexed <- contactID
	return nil
}

func (m *mockIndexer) RemoveEntity(_ context.Context, _ string, _ domain.EntityType, entityID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, entityID)
	return nil
}

func (m *mockIndexer) removedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removed...)
}

func waitForIndex(t *testing.T, indexer *mockIndexer) string {
	t.Helper()
	select {
	case id := <-indexer.indexed:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for background indexing")
		return ""
	}
}

func TestContactService_Create(t *testing.T) {
	stores := newCRMStores()
	service := NewContactService(stores.contacts, stores.companies, nil)
	ctx := context.Background()

	contact, err := service.Create(ctx, "u1", driving.CreateContactInput{
		FirstName: "  Alex ",
		LastName:  "Rivera",
		Email:     "alex@acme.io",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, contact.ID)
	assert.Equal(t, "Alex", contact.FirstName)
	assert.Equal(t, "u1", contact.UserID)

	stored, err := stores.contacts.Get(ctx, "u1", contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "alex@acme.io", stored.Email)
}

func TestContactService_Create_RequiresFirstName(t *testing.T) {
	stores := newCRMStores()
	service := NewContactService(stores.contacts, stores.companies, nil)

	_, err := service.Create(context.Background(), "u1", driving.CreateContactInput{
		FirstName: "   ",
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContactService_Create_UnknownCompany(t *testing.T) {
	stores := newCRMStores()
	service := NewContactService(stores.contacts, stores.companies, nil)

	_, err := service.Create(context.Background(), "u1", driving.CreateContactInput{
		FirstName: "Alex",
		CompanyID: "missing",
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContactService_Create_SchedulesIndexing(t *testing.T) {
	stores := newCRMStores()
	indexer := newMockIndexer()
	service := NewContactService(stores.contacts, stores.companies, indexer)

	contact, err := service.Create(context.Background(), "u1", driving.CreateContactInput{
		FirstName: "Alex",
	})

	require.NoError(t, err)
	assert.Equal(t, contact.ID, waitForIndex(t, indexer))
}

func TestContactService_Update_Partial(t *testing.T) {
	stores := newCRMStores()
	service := NewContactService(stores.contacts, stores.companies, nil)
	ctx := context.Background()

	seedContact(t, stores.contacts, domain.Contact{
		ID: "c1", UserID: "u1", FirstName: "Alex", LastName: "Rivera", Email: "alex@acme.io",
	})

	jobTitle := "CTO"
	updated, err := service.Update(ctx, "u1", "c1", driving.UpdateContactInput{
		JobTitle: &jobTitle,
	})

	require.NoError(t, err)
	assert.Equal(t, "CTO", updated.JobTitle)
	// Untouched fields survive.
	assert.Equal(t, "Alex", updated.FirstName)
	assert.Equal(t, "alex@acme.io", updated.Email)
}

func TestContactService_Update_CannotBlankFirstName(t *testing.T) {
	stores := newCRMStores()
	service := NewContactService(stores.contacts, stores.companies, nil)

	seedContact(t, stores.contacts, domain.Contact{ID: "c1", UserID: "u1", FirstName: "Alex"})

	blank := "  "
	_, err := service.Update(context.Background(), "u1", "c1", driving.UpdateContactInput{
		FirstName: &blank,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContactService_Update_DetachCompany(t *testing.T) {
	stores := newCRMStores()
	service := NewContactService(stores.contacts, stores.companies, nil)
	ctx := context.Background()

	acme := seedCompany(t, stores.companies, domain.Company{ID: "co-1", UserID: "u1", Name: "Acme Corp"})
	seedContact(t, stores.contacts, domain.Contact{
		ID: "c1", UserID: "u1", FirstName: "Alex", CompanyID: acme.ID,
	})

	empty := ""
	updated, err := service.Update(ctx, "u1", "c1", driving.UpdateContactInput{
		CompanyID: &empty,
	})

	require.NoError(t, err)
	assert.Empty(t, updated.CompanyID)
}

func TestContactService_Update_NotFound(t *testing.T) {
	stores := newCRMStores()
	service := NewContactService(stores.contacts, stores.companies, nil)

	name := "Alex"
	_, err := service.Update(context.Background(), "u1", "missing", driving.UpdateContactInput{
		FirstName: &name,
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactService_Delete_RemovesIndexEntry(t *testing.T) {
	stores := newCRMStores()
	indexer := newMockIndexer()
	service := NewContactService(stores.contacts, stores.companies, indexer)
	ctx := context.Background()

	seedContact(t, stores.contacts, domain.Contact{ID: "c1", UserID: "u1", FirstName: "Alex"})

	require.NoError(t, service.Delete(ctx, "u1", "c1"))

	_, err := stores.contacts.Get(ctx, "u1", "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"c1"}, indexer.removedIDs())
}

func TestContactService_Delete_OtherUsersContact(t *testing.T) {
	stores := newCRMStores()
	service := NewContactService(stores.contacts, stores.companies, nil)

	seedContact(t, stores.contacts, domain.Contact{ID: "c1", UserID: "u2", FirstName: "Alex"})

	err := service.Delete(context.Background(), "u1", "c1")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactService_List_ClampsPagination(t *testing.T) {
	stores := newCRMStores()
	service := NewContactService(stores.contacts, stores.companies, nil)

	for i := 0; i < 3; i++ {
		seedContact(t, stores.contacts, domain.Contact{
			ID: string(rune('a' + i)), UserID: "u1", FirstName: "Alex",
		})
	}

	page, err := service.List(context.Background(), "u1", domain.ContactListOptions{
		Page: domain.PageParams{Offset: -5, Limit: 0},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, page.Offset)
	assert.Equal(t, domain.DefaultPageLimit, page.Limit)
	assert.Len(t, page.Data, 3)
	assert.Equal(t, int64(3), page.Total)
	assert.False(t, page.HasMore)
}
