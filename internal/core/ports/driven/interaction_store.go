package driven

import (
	"context"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// InteractionStore persists logged interactions.
type InteractionStore interface {
	// Create stores a new interaction.
	Create(ctx context.Context, interaction *domain.Interaction) error

	// Get retrieves an interaction by ID.
	Get(ctx context.Context, userID, id string) (*domain.Interaction, error)

	// List returns a page of interactions, newest first, each hydrated
	// with its contact, plus the total row count. contactID is optional
	// and narrows to one contact.
	List(ctx context.Context, userID, contactID string, page domain.PageParams) ([]domain.InteractionWithContact, int64, error)

	// Update modifies an existing interaction.
	Update(ctx context.Context, interaction *domain.Interaction) error

	// Delete removes an interaction.
	Delete(ctx context.Context, userID, id string) error

	// Count returns the number of interactions the user owns.
	Count(ctx context.Context, userID string) (int64, error)

	// CountSince returns the number of interactions that occurred at or
	// after the given time.
	CountSince(ctx context.Context, userID string, since time.Time) (int64, error)
}
