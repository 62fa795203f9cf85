package driving

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// CreateCompanyInput carries the fields for a new company. Name is
// required.
type CreateCompanyInput struct {
	Name        string
	Website     string
	Industry    string
	Address     string
	Description string
}

// UpdateCompanyInput carries a partial company update. Nil fields are
// left untouched.
type UpdateCompanyInput struct {
	Name        *string
	Website     *string
	Industry    *string
	Address     *string
	Description *string
}

// CompanyService manages companies.
type CompanyService interface {
	// Create validates and stores a new company.
	Create(ctx context.Context, userID string, input CreateCompanyInput) (*domain.Company, error)

	// Get retrieves a company with its contacts.
	Get(ctx context.Context, userID, id string) (*domain.CompanyWithContacts, error)

	// List returns a page of companies.
	List(ctx context.Context, userID string, opts domain.CompanyListOptions) (domain.Page[domain.CompanyWithContacts], error)

	// Update applies a partial update to a company.
	Update(ctx context.Context, userID, id string, input UpdateCompanyInput) (*domain.Company, error)

	// Delete removes a company, detaching its contacts.
	Delete(ctx context.Context, userID, id string) error
}
