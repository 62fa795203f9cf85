package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// userStore implements driven.UserStore.
type userStore struct {
	store *Store
}

var _ driven.UserStore = (*userStore)(nil)

// Upsert creates the user or updates profile fields if it already exists.
func (s *userStore) Upsert(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO users (id, email, first_name, last_name, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			image_url = excluded.image_url,
			updated_at = excluded.updated_at
	`, user.ID, user.Email, nullString(user.FirstName), nullString(user.LastName),
		nullString(user.ImageURL), user.CreatedAt, user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}

// Get retrieves a user by ID.
func (s *userStore) Get(ctx context.Context, id string) (*domain.User, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name, image_url, created_at, updated_at
		FROM users WHERE id = ?
	`, id)

	var user domain.User
	var firstName, lastName, imageURL sql.NullString
	if err := row.Scan(&user.ID, &user.Email, &firstName, &lastName, &imageURL,
		&user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.ImageURL = imageURL.String
	return &user, nil
}

// Delete removes a user; cascading constraints take all owned data with it.
func (s *userStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
