package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Ensure ContactService implements the interface.
var _ driving.ContactService = (*ContactService)(nil)

// indexTimeout bounds a single background re-index, which makes one
// embedding API call.
const indexTimeout = 30 * time.Second

// ContactService manages contacts. Writes schedule background
// re-indexing through the indexer so the embedding index converges
// without blocking the caller.
type ContactService struct {
	contacts  driven.ContactStore
	companies driven.CompanyStore
	indexer   driving.IndexerService
}

// NewContactService creates a new contact service. indexer may be nil,
// in which case writes skip index maintenance.
func NewContactService(
	contacts driven.ContactStore,
	companies driven.CompanyStore,
	indexer driving.IndexerService,
) *ContactService {
	return &ContactService{
		contacts:  contacts,
		companies: companies,
		indexer:   indexer,
	}
}

// Create validates and stores a new contact.
func (s *ContactService) Create(ctx context.Context, userID string, input driving.CreateContactInput) (*domain.Contact, error) {
	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		return nil, fmt.Errorf("%w: first name is required", domain.ErrInvalidInput)
	}

	if input.CompanyID != "" {
		if _, err := s.companies.Get(ctx, userID, input.CompanyID); err != nil {
			return nil, fmt.Errorf("%w: company %s does not exist", domain.ErrInvalidInput, input.CompanyID)
		}
	}

	now := time.Now().UTC()
	contact := &domain.Contact{
		ID:        uuid.NewString(),
		UserID:    userID,
		FirstName: firstName,
		LastName:  strings.TrimSpace(input.LastName),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		JobTitle:  strings.TrimSpace(input.JobTitle),
		CompanyID: input.CompanyID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	s.scheduleIndex(userID, contact.ID)
	return contact, nil
}

// Get retrieves the full contact detail view.
func (s *ContactService) Get(ctx context.Context, userID, id string) (*domain.ContactDetail, error) {
	return s.contacts.GetDetail(ctx, userID, id)
}

// List returns a page of contacts hydrated with company and last
// interaction time.
func (s *ContactService) List(ctx context.Context, userID string, opts domain.ContactListOptions) (domain.Page[domain.ContactWithCompany], error) {
	opts.Page = opts.Page.Clamp()
	if opts.SortBy == "" {
		opts.SortBy = domain.ContactSortByCreatedAt
	}
	if opts.Order == "" {
		opts.Order = domain.SortDesc
	}

	contacts, total, err := s.contacts.List(ctx, userID, opts)
	if err != nil {
		return domain.Page[domain.ContactWithCompany]{}, fmt.Errorf("listing contacts: %w", err)
	}
	return domain.NewPage(contacts, total, opts.Page), nil
}

// Update applies a partial update to a contact.
func (s *ContactService) Update(ctx context.Context, userID, id string, input driving.UpdateContactInput) (*domain.Contact, error) {
	contact, err := s.contacts.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		firstName := strings.TrimSpace(*input.FirstName)
		if firstName == "" {
			return nil, fmt.Errorf("%w: first name cannot be empty", domain.ErrInvalidInput)
		}
		contact.FirstName = firstName
	}
	if input.LastName != nil {
		contact.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		contact.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		contact.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.JobTitle != nil {
		contact.JobTitle = strings.TrimSpace(*input.JobTitle)
	}
	if input.CompanyID != nil {
		if *input.CompanyID != "" {
			if _, err := s.companies.Get(ctx, userID, *input.CompanyID); err != nil {
				return nil, fmt.Errorf("%w: company %s does not exist", domain.ErrInvalidInput, *input.CompanyID)
			}
		}
		contact.CompanyID = *input.CompanyID
	}
	contact.UpdatedAt = time.Now().UTC()

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("updating contact: %w", err)
	}

	s.scheduleIndex(userID, contact.ID)
	return contact, nil
}

// Delete removes a contact, its dependent records and its index entry.
func (s *ContactService) Delete(ctx context.Context, userID, id string) error {
	if err := s.contacts.Delete(ctx, userID, id); err != nil {
		return err
	}

	if s.indexer != nil {
		if err := s.indexer.RemoveEntity(ctx, userID, domain.EntityContact, id); err != nil {
			slog.Warn("failed to remove contact index entry",
				"contact_id", id, "error", err)
		}
	}
	return nil
}

// scheduleIndex re-indexes a contact in the background. Index
// maintenance is best-effort: failures are logged and the write that
// triggered them still succeeds.
func (s *ContactService) scheduleIndex(userID, contactID string) {
	if s.indexer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
		defer cancel()
		if err := s.indexer.IndexContact(ctx, userID, contactID); err != nil {
			slog.Warn("background contact indexing failed",
				"contact_id", contactID, "error", err)
		}
	}()
}
