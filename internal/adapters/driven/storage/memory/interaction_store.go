package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// Ensure InteractionStore implements the interface.
var _ driven.InteractionStore = (*InteractionStore)(nil)

// InteractionStore is an in-memory implementation of driven.InteractionStore.
type InteractionStore struct {
	mu           sync.RWMutex
	interactions map[string]domain.Interaction

	contacts *ContactStore
}

// NewInteractionStore creates a new in-memory interaction store.
func NewInteractionStore() *InteractionStore {
	return &InteractionStore{interactions: make(map[string]domain.Interaction)}
}

// AttachContacts wires a contact store for hydration.
func (s *InteractionStore) AttachContacts(contacts *ContactStore) {
	s.contacts = contacts
}

// Create stores a new interaction.
func (s *InteractionStore) Create(_ context.Context, interaction *domain.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions[interaction.ID] = *interaction
	return nil
}

// Get retrieves an interaction by ID.
func (s *InteractionStore) Get(_ context.Context, userID, id string) (*domain.Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	interaction, ok := s.interactions[id]
	if !ok || interaction.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &interaction, nil
}

// List returns a page of interactions, newest first, plus the total count.
func (s *InteractionStore) List(ctx context.Context, userID, contactID string, page domain.PageParams) ([]domain.InteractionWithContact, int64, error) {
	s.mu.RLock()
	var all []domain.Interaction
	for _, interaction := range s.interactions {
		if interaction.UserID != userID {
			continue
		}
		if contactID != "" && interaction.ContactID != contactID {
			continue
		}
		all = append(all, interaction)
	}
	s.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].OccurredAt.After(all[j].OccurredAt)
	})

	total := int64(len(all))
	all = window(all, page)

	result := make([]domain.InteractionWithContact, len(all))
	for i, interaction := range all {
		result[i] = domain.InteractionWithContact{Interaction: interaction}
		if s.contacts != nil {
			if contact, err := s.contacts.Get(ctx, userID, interaction.ContactID); err == nil {
				result[i].Contact = contact
			}
		}
	}
	return result, total, nil
}

// Update modifies an existing interaction.
func (s *InteractionStore) Update(_ context.Context, interaction *domain.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.interactions[interaction.ID]
	if !ok || existing.UserID != interaction.UserID {
		return domain.ErrNotFound
	}
	s.interactions[interaction.ID] = *interaction
	return nil
}

// Delete removes an interaction.
func (s *InteractionStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	interaction, ok := s.interactions[id]
	if !ok || interaction.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.interactions, id)
	return nil
}

// Count returns the number of interactions the user owns.
func (s *InteractionStore) Count(_ context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, interaction := range s.interactions {
		if interaction.UserID == userID {
			count++
		}
	}
	return count, nil
}

// CountSince returns the number of interactions at or after the given time.
func (s *InteractionStore) CountSince(_ context.Context, userID string, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, interaction := range s.interactions {
		if interaction.UserID == userID && !interaction.OccurredAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *InteractionStore) byContact(userID, contactID string) []domain.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.Interaction{}
	for _, interaction := range s.interactions {
		if interaction.UserID == userID && interaction.ContactID == contactID {
			result = append(result, interaction)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OccurredAt.After(result[j].OccurredAt)
	})
	return result
}

func (s *InteractionStore) lastOccurred(userID, contactID string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var last *time.Time
	for _, interaction := range s.interactions {
		if interaction.UserID != userID || interaction.ContactID != contactID {
			continue
		}
		t := interaction.OccurredAt
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last
}

func (s *InteractionStore) deleteByContact(userID, contactID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, interaction := range s.interactions {
		if interaction.UserID == userID && interaction.ContactID == contactID {
			delete(s.interactions, id)
		}
	}
}
