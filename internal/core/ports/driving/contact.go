package driving

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// CreateContactInput carries the fields for a new contact. FirstName is
// required.
type CreateContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	JobTitle  string
	CompanyID string
}

// UpdateContactInput carries a partial contact update. Nil fields are
// left untouched. Setting CompanyID to an empty string detaches the
// contact from its company.
type UpdateContactInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	JobTitle  *string
	CompanyID *string
}

// ContactService manages contacts. Writes schedule background
// re-indexing so search data converges without blocking the caller.
type ContactService interface {
	// Create validates and stores a new contact.
	Create(ctx context.Context, userID string, input CreateContactInput) (*domain.Contact, error)

	// Get retrieves the full contact detail view.
	Get(ctx context.Context, userID, id string) (*domain.ContactDetail, error)

	// List returns a page of contacts hydrated with company and last
	// interaction time.
	List(ctx context.Context, userID string, opts domain.ContactListOptions) (domain.Page[domain.ContactWithCompany], error)

	// Update applies a partial update to a contact.
	Update(ctx context.Context, userID, id string, input UpdateContactInput) (*domain.Contact, error)

	// Delete removes a contact, its dependent records and its index
	// entry.
	Delete(ctx context.Context, userID, id string) error
}
