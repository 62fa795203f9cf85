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

// Ensure IndexerService implements the interface.
var _ driving.IndexerService = (*IndexerService)(nil)

// IndexerService maintains the embedding index behind semantic search.
type IndexerService struct {
	contacts   driven.ContactStore
	notes      driven.NoteStore
	embeddings driven.EmbeddingStore
	embedder   driven.EmbeddingService
}

// NewIndexerService creates a new indexer. embedder may be nil, in
// which case indexing is a no-op and semantic search stays empty.
func NewIndexerService(
	contacts driven.ContactStore,
	notes driven.NoteStore,
	embeddings driven.EmbeddingStore,
	embedder driven.EmbeddingService,
) *IndexerService {
	return &IndexerService{
		contacts:   contacts,
		notes:      notes,
		embeddings: embeddings,
		embedder:   embedder,
	}
}

// IndexContact rebuilds the index entry for one contact from its
// current fields, company name and note contents. When the assembled
// text matches the stored snapshot the embedding call is skipped.
func (s *IndexerService) IndexContact(ctx context.Context, userID, contactID string) error {
	if s.embedder == nil {
		return nil
	}

	contact, err := s.contacts.GetWithCompany(ctx, userID, contactID)
	if err != nil {
		return fmt.Errorf("loading contact for indexing: %w", err)
	}

	notes, err := s.notes.ListByContact(ctx, userID, contactID)
	if err != nil {
		return fmt.Errorf("loading notes for indexing: %w", err)
	}

	text := contactSourceText(contact, notes)

	existing, err := s.embeddings.GetByEntity(ctx, userID, domain.EntityContact, contactID)
	if err == nil && existing.SourceText == text {
		return nil
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embedding contact text: %w", err)
	}

	record := &domain.EmbeddingRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		EntityType: domain.EntityContact,
		EntityID:   contactID,
		SourceText: text,
		Vector:     vector,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.embeddings.Upsert(ctx, record); err != nil {
		return fmt.Errorf("storing embedding: %w", err)
	}
	return nil
}

// RemoveEntity drops an entity's index entry.
func (s *IndexerService) RemoveEntity(ctx context.Context, userID string, entityType domain.EntityType, entityID string) error {
	if !entityType.Valid() {
		return fmt.Errorf("%w: unknown entity type %q", domain.ErrInvalidInput, entityType)
	}
	return s.embeddings.DeleteByEntity(ctx, userID, entityType, entityID)
}

// contactSourceText assembles the text that represents a contact in
// the embedding space: identity fields, company name, then every note,
// non-empty parts joined by single spaces.
func contactSourceText(contact *domain.ContactWithCompany, notes []domain.Note) string {
	parts := make([]string, 0, 5+len(notes))
	for _, p := range []string{
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.JobTitle,
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if contact.Company != nil && contact.Company.Name != "" {
		parts = append(parts, contact.Company.Name)
	}
	for _, note := range notes {
		if note.Content != "" {
			parts = append(parts, note.Content)
		}
	}
	return strings.Join(parts, " ")
}
