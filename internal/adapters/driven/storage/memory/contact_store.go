package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// Ensure ContactStore implements the interface.
var _ driven.ContactStore = (*ContactStore)(nil)

// ContactStore is an in-memory implementation of driven.ContactStore.
type ContactStore struct {
	mu       sync.RWMutex
	contacts map[string]domain.Contact

	// Optional sibling stores for hydration.
	companies     *CompanyStore
	interactions  *InteractionStore
	notes         *NoteStore
	notifications *NotificationStore
}

// NewContactStore creates a new in-memory contact store.
func NewContactStore() *ContactStore {
	return &ContactStore{contacts: make(map[string]domain.Contact)}
}

// Attach wires sibling stores for hydrated reads. Any may be nil.
func (s *ContactStore) Attach(
	companies *CompanyStore,
	interactions *InteractionStore,
	notes *NoteStore,
	notifications *NotificationStore,
) {
	s.companies = companies
	s.interactions = interactions
	s.notes = notes
	s.notifications = notifications
}

// Create stores a new contact.
func (s *ContactStore) Create(_ context.Context, contact *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[contact.ID] = *contact
	return nil
}

// Get retrieves a contact by ID.
func (s *ContactStore) Get(_ context.Context, userID, id string) (*domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contact, ok := s.contacts[id]
	if !ok || contact.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &contact, nil
}

// GetWithCompany retrieves a contact hydrated with its company.
func (s *ContactStore) GetWithCompany(ctx context.Context, userID, id string) (*domain.ContactWithCompany, error) {
	contact, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	hydrated := s.hydrate(ctx, *contact)
	return &hydrated, nil
}

// GetDetail retrieves a contact with its company, interactions, notes
// and pending notifications.
func (s *ContactStore) GetDetail(ctx context.Context, userID, id string) (*domain.ContactDetail, error) {
	hydrated, err := s.GetWithCompany(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.ContactDetail{
		Contact:       hydrated.Contact,
		Company:       hydrated.Company,
		Interactions:  []domain.Interaction{},
		Notes:         []domain.Note{},
		Notifications: []domain.Notification{},
	}
	if s.interactions != nil {
		detail.Interactions = s.interactions.byContact(userID, id)
	}
	if s.notes != nil {
		notes, _ := s.notes.ListByContact(ctx, userID, id)
		detail.Notes = notes
	}
	if s.notifications != nil {
		detail.Notifications = s.notifications.pendingByContact(userID, id)
	}
	return detail, nil
}

// List returns a page of hydrated contacts plus the total count.
func (s *ContactStore) List(ctx context.Context, userID string, opts domain.ContactListOptions) ([]domain.ContactWithCompany, int64, error) {
	s.mu.RLock()
	var all []domain.Contact
	for _, contact := range s.contacts {
		if contact.UserID != userID {
			continue
		}
		if opts.CompanyID != "" && contact.CompanyID != opts.CompanyID {
			continue
		}
		if opts.Query != "" {
			q := strings.ToLower(opts.Query)
			if !strings.Contains(strings.ToLower(contact.FirstName), q) &&
				!strings.Contains(strings.ToLower(contact.LastName), q) &&
				!strings.Contains(strings.ToLower(contact.Email), q) {
				continue
			}
		}
		all = append(all, contact)
	}
	s.mu.RUnlock()

	hydrated := make([]domain.ContactWithCompany, len(all))
	for i, contact := range all {
		hydrated[i] = s.hydrate(ctx, contact)
	}

	sort.SliceStable(hydrated, func(i, j int) bool {
		var less bool
		switch opts.SortBy {
		case domain.ContactSortByName:
			less = strings.ToLower(hydrated[i].FirstName) < strings.ToLower(hydrated[j].FirstName)
		case domain.ContactSortByLastInteraction:
			less = timePtrBefore(hydrated[i].LastInteractionAt, hydrated[j].LastInteractionAt)
		default:
			less = hydrated[i].CreatedAt.Before(hydrated[j].CreatedAt)
		}
		if opts.Order == domain.SortDesc {
			return !less
		}
		return less
	})

	total := int64(len(hydrated))
	return window(hydrated, opts.Page), total, nil
}

// ListAll returns every contact the user owns, hydrated with company.
func (s *ContactStore) ListAll(ctx context.Context, userID string) ([]domain.ContactWithCompany, error) {
	s.mu.RLock()
	var all []domain.Contact
	for _, contact := range s.contacts {
		if contact.UserID == userID {
			all = append(all, contact)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	hydrated := make([]domain.ContactWithCompany, len(all))
	for i, contact := range all {
		hydrated[i] = s.hydrate(ctx, contact)
	}
	return hydrated, nil
}

// Update modifies an existing contact.
func (s *ContactStore) Update(_ context.Context, contact *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.contacts[contact.ID]
	if !ok || existing.UserID != contact.UserID {
		return domain.ErrNotFound
	}
	s.contacts[contact.ID] = *contact
	return nil
}

// Delete removes a contact and its dependent records.
func (s *ContactStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	contact, ok := s.contacts[id]
	if !ok || contact.UserID != userID {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(s.contacts, id)
	s.mu.Unlock()

	if s.interactions != nil {
		s.interactions.deleteByContact(userID, id)
	}
	if s.notes != nil {
		s.notes.deleteByContact(userID, id)
	}
	if s.notifications != nil {
		s.notifications.deleteByContact(userID, id)
	}
	return nil
}

// Count returns the number of contacts the user owns.
func (s *ContactStore) Count(_ context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, contact := range s.contacts {
		if contact.UserID == userID {
			count++
		}
	}
	return count, nil
}

// CountCreatedSince returns the number of contacts created at or after
// the given time.
func (s *ContactStore) CountCreatedSince(_ context.Context, userID string, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, contact := range s.contacts {
		if contact.UserID == userID && !contact.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *ContactStore) hydrate(ctx context.Context, contact domain.Contact) domain.ContactWithCompany {
	hydrated := domain.ContactWithCompany{Contact: contact}
	if s.companies != nil && contact.CompanyID != "" {
		if company, err := s.companies.Get(ctx, contact.UserID, contact.CompanyID); err == nil {
			hydrated.Company = company
		}
	}
	if s.interactions != nil {
		hydrated.LastInteractionAt = s.interactions.lastOccurred(contact.UserID, contact.ID)
	}
	return hydrated
}

func (s *ContactStore) byCompany(userID, companyID string) []domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.Contact{}
	for _, contact := range s.contacts {
		if contact.UserID == userID && contact.CompanyID == companyID {
			result = append(result, contact)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return strings.ToLower(result[i].FirstName) < strings.ToLower(result[j].FirstName)
	})
	return result
}

func (s *ContactStore) detachCompany(userID, companyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, contact := range s.contacts {
		if contact.UserID == userID && contact.CompanyID == companyID {
			contact.CompanyID = ""
			s.contacts[id] = contact
		}
	}
}

func timePtrBefore(a, b *time.Time) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.Before(*b)
}
