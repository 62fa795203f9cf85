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

// Ensure NoteService implements the interface.
var _ driving.NoteService = (*NoteService)(nil)

// NoteService manages notes. Note content feeds the attached contact's
// indexable text, so writes to contact notes schedule re-indexing.
type NoteService struct {
	notes    driven.NoteStore
	contacts driven.ContactStore
	indexer  driving.IndexerService
}

// NewNoteService creates a new note service. indexer may be nil, in
// which case note writes skip index maintenance.
func NewNoteService(
	notes driven.NoteStore,
	contacts driven.ContactStore,
	indexer driving.IndexerService,
) *NoteService {
	return &NoteService{notes: notes, contacts: contacts, indexer: indexer}
}

// Create validates and stores a new note.
func (s *NoteService) Create(ctx context.Context, userID string, input driving.CreateNoteInput) (*domain.Note, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: note content is required", domain.ErrInvalidInput)
	}
	if input.ContactID != "" {
		if _, err := s.contacts.Get(ctx, userID, input.ContactID); err != nil {
			return nil, fmt.Errorf("%w: contact %s does not exist", domain.ErrInvalidInput, input.ContactID)
		}
	}

	now := time.Now().UTC()
	note := &domain.Note{
		ID:            uuid.NewString(),
		UserID:        userID,
		Content:       content,
		ContactID:     input.ContactID,
		CompanyID:     input.CompanyID,
		InteractionID: input.InteractionID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}

	s.scheduleContactIndex(userID, note.ContactID)
	return note, nil
}

// Get retrieves a note by ID.
func (s *NoteService) Get(ctx context.Context, userID, id string) (*domain.Note, error) {
	return s.notes.Get(ctx, userID, id)
}

// List returns a page of notes matching the filters, newest first.
func (s *NoteService) List(ctx context.Context, userID string, filters domain.NoteFilters, page domain.PageParams) (domain.Page[domain.Note], error) {
	page = page.Clamp()
	notes, total, err := s.notes.List(ctx, userID, filters, page)
	if err != nil {
		return domain.Page[domain.Note]{}, fmt.Errorf("listing notes: %w", err)
	}
	return domain.NewPage(notes, total, page), nil
}

// Update replaces a note's content.
func (s *NoteService) Update(ctx context.Context, userID, id, content string) (*domain.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: note content cannot be empty", domain.ErrInvalidInput)
	}

	note, err := s.notes.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	note.Content = content
	note.UpdatedAt = time.Now().UTC()
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("updating note: %w", err)
	}

	s.scheduleContactIndex(userID, note.ContactID)
	return note, nil
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, userID, id string) error {
	note, err := s.notes.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.scheduleContactIndex(userID, note.ContactID)
	return nil
}

func (s *NoteService) scheduleContactIndex(userID, contactID string) {
	if s.indexer == nil || contactID == "" {
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
