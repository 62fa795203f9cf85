package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Ensure CompanyService implements the interface.
var _ driving.CompanyService = (*CompanyService)(nil)

// CompanyService manages companies.
type CompanyService struct {
	companies driven.CompanyStore
}

// NewCompanyService creates a new company service.
func NewCompanyService(companies driven.CompanyStore) *CompanyService {
	return &CompanyService{companies: companies}
}

// Create validates and stores a new company.
func (s *CompanyService) Create(ctx context.Context, userID string, input driving.CreateCompanyInput) (*domain.Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	company := &domain.Company{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Website:     strings.TrimSpace(input.Website),
		Industry:    strings.TrimSpace(input.Industry),
		Address:     strings.TrimSpace(input.Address),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.companies.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("creating company: %w", err)
	}
	return company, nil
}

// Get retrieves a company with its contacts.
func (s *CompanyService) Get(ctx context.Context, userID, id string) (*domain.CompanyWithContacts, error) {
	return s.companies.GetWithContacts(ctx, userID, id)
}

// List returns a page of companies.
func (s *CompanyService) List(ctx context.Context, userID string, opts domain.CompanyListOptions) (domain.Page[domain.CompanyWithContacts], error) {
	opts.Page = opts.Page.Clamp()
	if opts.SortBy == "" {
		opts.SortBy = domain.CompanySortByName
	}
	if opts.Order == "" {
		opts.Order = domain.SortAsc
	}

	companies, total, err := s.companies.List(ctx, userID, opts)
	if err != nil {
		return domain.Page[domain.CompanyWithContacts]{}, fmt.Errorf("listing companies: %w", err)
	}
	return domain.NewPage(companies, total, opts.Page), nil
}

// Update applies a partial update to a company.
func (s *CompanyService) Update(ctx context.Context, userID, id string, input driving.UpdateCompanyInput) (*domain.Company, error) {
	company, err := s.companies.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: company name cannot be empty", domain.ErrInvalidInput)
		}
		company.Name = name
	}
	if input.Website != nil {
		company.Website = strings.TrimSpace(*input.Website)
	}
	if input.Industry != nil {
		company.Industry = strings.TrimSpace(*input.Industry)
	}
	if input.Address != nil {
		company.Address = strings.TrimSpace(*input.Address)
	}
	if input.Description != nil {
		company.Description = strings.TrimSpace(*input.Description)
	}
	company.UpdatedAt = time.Now().UTC()

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("updating company: %w", err)
	}
	return company, nil
}

// Delete removes a company, detaching its contacts.
func (s *CompanyService) Delete(ctx context.Context, userID, id string) error {
	return s.companies.Delete(ctx, userID, id)
}
