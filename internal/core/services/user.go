package services

import (
	"context"
	"fmt"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Ensure UserService implements the interface.
var _ driving.UserService = (*UserService)(nil)

// UserService mirrors identity-provider users into local storage. The
// identity provider owns the account lifecycle; this side only follows
// its webhooks.
type UserService struct {
	users driven.UserStore
}

// NewUserService creates a new user service.
func NewUserService(users driven.UserStore) *UserService {
	return &UserService{users: users}
}

// Sync creates or updates the local user row.
func (s *UserService) Sync(ctx context.Context, input driving.SyncUserInput) (*domain.User, error) {
	if input.ID == "" {
		return nil, fmt.Errorf("%w: user ID is required", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        input.ID,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		ImageURL:  input.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("syncing user: %w", err)
	}
	return user, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

// Delete removes a user and all data the user owns.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
