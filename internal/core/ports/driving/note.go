package driving

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// CreateNoteInput carries the fields for a new note. Content is
// required; the reference fields are all optional.
type CreateNoteInput struct {
	Content       string
	ContactID     string
	CompanyID     string
	InteractionID string
}

// NoteService manages notes. Writes to notes attached to a contact
// schedule that contact's re-indexing.
type NoteService interface {
	// Create validates and stores a new note.
	Create(ctx context.Context, userID string, input CreateNoteInput) (*domain.Note, error)

	// Get retrieves a note by ID.
	Get(ctx context.Context, userID, id string) (*domain.Note, error)

	// List returns a page of notes matching the filters, newest first.
	List(ctx context.Context, userID string, filters domain.NoteFilters, page domain.PageParams) (domain.Page[domain.Note], error)

	// Update replaces a note's content.
	Update(ctx context.Context, userID, id, content string) (*domain.Note, error)

	// Delete removes a note.
	Delete(ctx context.Context, userID, id string) error
}
