package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Ensure InteractionService implements the interface.
var _ driving.InteractionService = (*InteractionService)(nil)

// InteractionService manages logged interactions.
type InteractionService struct {
	interactions driven.InteractionStore
	contacts     driven.ContactStore
}

// NewInteractionService creates a new interaction service.
func NewInteractionService(interactions driven.InteractionStore, contacts driven.ContactStore) *InteractionService {
	return &InteractionService{interactions: interactions, contacts: contacts}
}

// Create validates and stores a new interaction against a contact.
func (s *InteractionService) Create(ctx context.Context, userID string, input driving.CreateInteractionInput) (*domain.Interaction, error) {
	if input.ContactID == "" {
		return nil, fmt.Errorf("%w: contact ID is required", domain.ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown interaction type %q", domain.ErrInvalidInput, input.Type)
	}
	if _, err := s.contacts.Get(ctx, userID, input.ContactID); err != nil {
		return nil, fmt.Errorf("%w: contact %s does not exist", domain.ErrInvalidInput, input.ContactID)
	}

	now := time.Now().UTC()
	occurredAt := now
	if input.OccurredAt != nil {
		occurredAt = input.OccurredAt.UTC()
	}

	interaction := &domain.Interaction{
		ID:         uuid.NewString(),
		UserID:     userID,
		ContactID:  input.ContactID,
		Type:       input.Type,
		Summary:    input.Summary,
		Outcome:    input.Outcome,
		Sentiment:  input.Sentiment,
		OccurredAt: occurredAt,
		CreatedAt:  now,
	}

	if err := s.interactions.Create(ctx, interaction); err != nil {
		return nil, fmt.Errorf("creating interaction: %w", err)
	}
	return interaction, nil
}

// Get retrieves an interaction by ID.
func (s *InteractionService) Get(ctx context.Context, userID, id string) (*domain.Interaction, error) {
	return s.interactions.Get(ctx, userID, id)
}

// List returns a page of interactions, newest first.
func (s *InteractionService) List(ctx context.Context, userID, contactID string, page domain.PageParams) (domain.Page[domain.InteractionWithContact], error) {
	page = page.Clamp()
	interactions, total, err := s.interactions.List(ctx, userID, contactID, page)
	if err != nil {
		return domain.Page[domain.InteractionWithContact]{}, fmt.Errorf("listing interactions: %w", err)
	}
	return domain.NewPage(interactions, total, page), nil
}

// Update applies a partial update to an interaction.
func (s *InteractionService) Update(ctx context.Context, userID, id string, input driving.UpdateInteractionInput) (*domain.Interaction, error) {
	interaction, err := s.interactions.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown interaction type %q", domain.ErrInvalidInput, *input.Type)
		}
		interaction.Type = *input.Type
	}
	if input.Summary != nil {
		interaction.Summary = *input.Summary
	}
	if input.Outcome != nil {
		interaction.Outcome = *input.Outcome
	}
	if input.Sentiment != nil {
		interaction.Sentiment = *input.Sentiment
	}
	if input.OccurredAt != nil {
		interaction.OccurredAt = input.OccurredAt.UTC()
	}

	if err := s.interactions.Update(ctx, interaction); err != nil {
		return nil, fmt.Errorf("updating interaction: %w", err)
	}
	return interaction, nil
}

// Delete removes an interaction.
func (s *InteractionService) Delete(ctx context.Context, userID, id string) error {
	return s.interactions.Delete(ctx, userID, id)
}
