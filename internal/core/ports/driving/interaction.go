package driving

import (
	"context"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// CreateInteractionInput carries the fields for a new interaction.
// ContactID and Type are required; OccurredAt defaults to now.
type CreateInteractionInput struct {
	ContactID  string
	Type       domain.InteractionType
	Summary    string
	Outcome    string
	Sentiment  domain.Sentiment
	OccurredAt *time.Time
}

// UpdateInteractionInput carries a partial interaction update. Nil
// fields are left untouched.
type UpdateInteractionInput struct {
	Type       *domain.InteractionType
	Summary    *string
	Outcome    *string
	Sentiment  *domain.Sentiment
	OccurredAt *time.Time
}

// InteractionService manages logged interactions.
type InteractionService interface {
	// Create validates and stores a new interaction against a contact.
	Create(ctx context.Context, userID string, input CreateInteractionInput) (*domain.Interaction, error)

	// Get retrieves an interaction by ID.
	Get(ctx context.Context, userID, id string) (*domain.Interaction, error)

	// List returns a page of interactions, newest first. contactID is
	// optional and narrows to one contact.
	List(ctx context.Context, userID, contactID string, page domain.PageParams) (domain.Page[domain.InteractionWithContact], error)

	// Update applies a partial update to an interaction.
	Update(ctx context.Context, userID, id string, input UpdateInteractionInput) (*domain.Interaction, error)

	// Delete removes an interaction.
	Delete(ctx context.Context, userID, id string) error
}
