package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// Ensure NoteStore implements the interface.
var _ driven.NoteStore = (*NoteStore)(nil)

// NoteStore is an in-memory implementation of driven.NoteStore.
type NoteStore struct {
	mu    sync.RWMutex
	notes map[string]domain.Note
}

// NewNoteStore creates a new in-memory note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{notes: make(map[string]domain.Note)}
}

// Create stores a new note.
func (s *NoteStore) Create(_ context.Context, note *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[note.ID] = *note
	return nil
}

// Get retrieves a note by ID.
func (s *NoteStore) Get(_ context.Context, userID, id string) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[id]
	if !ok || note.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &note, nil
}

// List returns a page of notes matching the filters, newest first, plus
// the total count.
func (s *NoteStore) List(_ context.Context, userID string, filters domain.NoteFilters, page domain.PageParams) ([]domain.Note, int64, error) {
	s.mu.RLock()
	var all []domain.Note
	for _, note := range s.notes {
		if note.UserID != userID {
			continue
		}
		if filters.ContactID != "" && note.ContactID != filters.ContactID {
			continue
		}
		if filters.CompanyID != "" && note.CompanyID != filters.CompanyID {
			continue
		}
		if filters.InteractionID != "" && note.InteractionID != filters.InteractionID {
			continue
		}
		if filters.Query != "" && !strings.Contains(strings.ToLower(note.Content), strings.ToLower(filters.Query)) {
			continue
		}
		all = append(all, note)
	}
	s.mu.RUnlock()

	sortNotesNewestFirst(all)
	total := int64(len(all))
	return window(all, page), total, nil
}

// ListByContact returns every note attached to a contact, newest first.
func (s *NoteStore) ListByContact(_ context.Context, userID, contactID string) ([]domain.Note, error) {
	s.mu.RLock()
	result := []domain.Note{}
	for _, note := range s.notes {
		if note.UserID == userID && note.ContactID == contactID {
			result = append(result, note)
		}
	}
	s.mu.RUnlock()

	sortNotesNewestFirst(result)
	return result, nil
}

// Update modifies an existing note.
func (s *NoteStore) Update(_ context.Context, note *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.notes[note.ID]
	if !ok || existing.UserID != note.UserID {
		return domain.ErrNotFound
	}
	s.notes[note.ID] = *note
	return nil
}

// Delete removes a note.
func (s *NoteStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[id]
	if !ok || note.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

// Count returns the number of notes the user owns.
func (s *NoteStore) Count(_ context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, note := range s.notes {
		if note.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *NoteStore) deleteByContact(userID, contactID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, note := range s.notes {
		if note.UserID == userID && note.ContactID == contactID {
			delete(s.notes, id)
		}
	}
}

func sortNotesNewestFirst(notes []domain.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}
