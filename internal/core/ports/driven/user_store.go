package driven

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// UserStore persists users mirrored from the identity provider.
type UserStore interface {
	// Upsert creates the user or updates profile fields if it already exists.
	Upsert(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID.
	Get(ctx context.Context, id string) (*domain.User, error)

	// Delete removes a user and, via cascading constraints, all owned data.
	Delete(ctx context.Context, id string) error
}
