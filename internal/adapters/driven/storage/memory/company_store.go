package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// Ensure CompanyStore implements the interface.
var _ driven.CompanyStore = (*CompanyStore)(nil)

// CompanyStore is an in-memory implementation of driven.CompanyStore.
type CompanyStore struct {
	mu        sync.RWMutex
	companies map[string]domain.Company

	// contacts, when set, hydrates GetWithContacts and List.
	contacts *ContactStore
}

// NewCompanyStore creates a new in-memory company store.
func NewCompanyStore() *CompanyStore {
	return &CompanyStore{companies: make(map[string]domain.Company)}
}

// AttachContacts wires a contact store for hydration.
func (s *CompanyStore) AttachContacts(contacts *ContactStore) {
	s.contacts = contacts
}

// Create stores a new company.
func (s *CompanyStore) Create(_ context.Context, company *domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[company.ID] = *company
	return nil
}

// Get retrieves a company by ID.
func (s *CompanyStore) Get(_ context.Context, userID, id string) (*domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	company, ok := s.companies[id]
	if !ok || company.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &company, nil
}

// GetWithContacts retrieves a company together with its contacts.
func (s *CompanyStore) GetWithContacts(ctx context.Context, userID, id string) (*domain.CompanyWithContacts, error) {
	company, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &domain.CompanyWithContacts{
		Company:  *company,
		Contacts: s.contactsOf(userID, id),
	}, nil
}

// List returns a page of companies plus the total count.
func (s *CompanyStore) List(_ context.Context, userID string, opts domain.CompanyListOptions) ([]domain.CompanyWithContacts, int64, error) {
	s.mu.RLock()
	var all []domain.Company
	for _, company := range s.companies {
		if company.UserID != userID {
			continue
		}
		if opts.Query != "" && !strings.Contains(strings.ToLower(company.Name), strings.ToLower(opts.Query)) {
			continue
		}
		all = append(all, company)
	}
	s.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		var less bool
		if opts.SortBy == domain.CompanySortByCreatedAt {
			less = all[i].CreatedAt.Before(all[j].CreatedAt)
		} else {
			less = strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
		}
		if opts.Order == domain.SortDesc {
			return !less
		}
		return less
	})

	total := int64(len(all))
	all = window(all, opts.Page)

	result := make([]domain.CompanyWithContacts, len(all))
	for i, company := range all {
		result[i] = domain.CompanyWithContacts{
			Company:  company,
			Contacts: s.contactsOf(userID, company.ID),
		}
	}
	return result, total, nil
}

// Update modifies an existing company.
func (s *CompanyStore) Update(_ context.Context, company *domain.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.companies[company.ID]
	if !ok || existing.UserID != company.UserID {
		return domain.ErrNotFound
	}
	s.companies[company.ID] = *company
	return nil
}

// Delete removes a company, detaching its contacts.
func (s *CompanyStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	company, ok := s.companies[id]
	if !ok || company.UserID != userID {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(s.companies, id)
	s.mu.Unlock()

	if s.contacts != nil {
		s.contacts.detachCompany(userID, id)
	}
	return nil
}

// Count returns the number of companies the user owns.
func (s *CompanyStore) Count(_ context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, company := range s.companies {
		if company.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *CompanyStore) contactsOf(userID, companyID string) []domain.Contact {
	if s.contacts == nil {
		return []domain.Contact{}
	}
	return s.contacts.byCompany(userID, companyID)
}

// window applies clamped offset/limit pagination to a slice.
func window[T any](items []T, page domain.PageParams) []T {
	page = page.Clamp()
	if page.Offset >= len(items) {
		return nil
	}
	items = items[page.Offset:]
	if len(items) > page.Limit {
		items = items[:page.Limit]
	}
	return items
}
