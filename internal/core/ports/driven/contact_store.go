package driven

import (
	"context"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// ContactStore persists contacts. All queries are scoped to a user;
// a lookup for another user's row behaves as not found.
type ContactStore interface {
	// Create stores a new contact.
	Create(ctx context.Context, contact *domain.Contact) error

	// Get retrieves a contact by ID.
	Get(ctx context.Context, userID, id string) (*domain.Contact, error)

	// GetWithCompany retrieves a contact hydrated with its company.
	GetWithCompany(ctx context.Context, userID, id string) (*domain.ContactWithCompany, error)

	// GetDetail retrieves a contact with its company, interactions,
	// notes and pending notifications.
	GetDetail(ctx context.Context, userID, id string) (*domain.ContactDetail, error)

	// List returns a page of contacts, each hydrated with its company
	// and last interaction time, plus the total row count for the same
	// filters.
	List(ctx context.Context, userID string, opts domain.ContactListOptions) ([]domain.ContactWithCompany, int64, error)

	// ListAll returns every contact the user owns, hydrated with
	// company. Fuzzy search scores against the full set.
	ListAll(ctx context.Context, userID string) ([]domain.ContactWithCompany, error)

	// Update modifies an existing contact.
	Update(ctx context.Context, contact *domain.Contact) error

	// Delete removes a contact and its dependent interactions, notes
	// and notifications.
	Delete(ctx context.Context, userID, id string) error

	// Count returns the number of contacts the user owns.
	Count(ctx context.Context, userID string) (int64, error)

	// CountCreatedSince returns the number of contacts created at or
	// after the given time.
	CountCreatedSince(ctx context.Context, userID string, since time.Time) (int64, error)
}
