package driven

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// NoteStore persists notes.
type NoteStore interface {
	// Create stores a new note.
	Create(ctx context.Context, note *domain.Note) error

	// Get retrieves a note by ID.
	Get(ctx context.Context, userID, id string) (*domain.Note, error)

	// List returns a page of notes matching the filters, newest first,
	// plus the total row count.
	List(ctx context.Context, userID string, filters domain.NoteFilters, page domain.PageParams) ([]domain.Note, int64, error)

	// ListByContact returns every note attached to a contact, newest
	// first. Indexing reads note content through this.
	ListByContact(ctx context.Context, userID, contactID string) ([]domain.Note, error)

	// Update modifies an existing note.
	Update(ctx context.Context, note *domain.Note) error

	// Delete removes a note.
	Delete(ctx context.Context, userID, id string) error

	// Count returns the number of notes the user owns.
	Count(ctx context.Context, userID string) (int64, error)
}
