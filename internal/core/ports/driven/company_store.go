package driven

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// CompanyStore persists companies. All queries are scoped to a user;
// a lookup for another user's row behaves as not found.
type CompanyStore interface {
	// Create stores a new company.
	Create(ctx context.Context, company *domain.Company) error

	// Get retrieves a company by ID.
	Get(ctx context.Context, userID, id string) (*domain.Company, error)

	// GetWithContacts retrieves a company together with its contacts.
	GetWithContacts(ctx context.Context, userID, id string) (*domain.CompanyWithContacts, error)

	// List returns a page of companies plus the total row count for the
	// same filters.
	List(ctx context.Context, userID string, opts domain.CompanyListOptions) ([]domain.CompanyWithContacts, int64, error)

	// Update modifies an existing company.
	Update(ctx context.Context, company *domain.Company) error

	// Delete removes a company. Contacts referencing it keep existing
	// with their company link cleared.
	Delete(ctx context.Context, userID, id string) error

	// Count returns the number of companies the user owns.
	Count(ctx context.Context, userID string) (int64, error)
}
