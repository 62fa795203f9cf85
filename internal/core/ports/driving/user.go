package driving

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// SyncUserInput mirrors a user record from the identity provider's
// webhook payload.
type SyncUserInput struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	ImageURL  string
}

// UserService mirrors identity-provider users into local storage.
type UserService interface {
	// Sync creates or updates the local user row.
	Sync(ctx context.Context, input SyncUserInput) (*domain.User, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, id string) (*domain.User, error)

	// Delete removes a user and all data the user owns.
	Delete(ctx context.Context, id string) error
}
