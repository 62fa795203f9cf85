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

// interactionStore implements driven.InteractionStore.
type interactionStore struct {
	store *Store
}

var _ driven.InteractionStore = (*interactionStore)(nil)

const interactionColumns = "id, user_id, contact_id, type, summary, outcome, sentiment, occurred_at, created_at"

// Create stores a new interaction.
func (s *interactionStore) Create(ctx context.Context, interaction *domain.Interaction) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO interactions (`+interactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, interaction.ID, interaction.UserID, interaction.ContactID, interaction.Type,
		nullString(interaction.Summary), nullString(interaction.Outcome),
		nullString(string(interaction.Sentiment)), interaction.OccurredAt, interaction.CreatedAt)

	if err != nil {
		return fmt.Errorf("inserting interaction: %w", err)
	}
	return nil
}

// Get retrieves an interaction by ID.
func (s *interactionStore) Get(ctx context.Context, userID, id string) (*domain.Interaction, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+interactionColumns+` FROM interactions WHERE id = ? AND user_id = ?
	`, id, userID)

	interaction, err := scanInteraction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning interaction: %w", err)
	}
	return interaction, nil
}

// List returns a page of interactions, newest first, each hydrated with
// its contact, plus the total row count.
func (s *interactionStore) List(ctx context.Context, userID, contactID string, page domain.PageParams) ([]domain.InteractionWithContact, int64, error) {
	where := " WHERE i.user_id = ?"
	args := []any{userID}
	if contactID != "" {
		where += " AND i.contact_id = ?"
		args = append(args, contactID)
	}

	var total int64
	if err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM interactions i"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting interactions: %w", err)
	}

	query := `
		SELECT i.id, i.user_id, i.contact_id, i.type, i.summary, i.outcome,
		       i.sentiment, i.occurred_at, i.created_at,
		       c.id, c.user_id, c.first_name, c.last_name, c.email, c.phone,
		       c.job_title, c.company_id, c.created_at, c.updated_at
		FROM interactions i
		JOIN contacts c ON c.id = i.contact_id` + where + `
		ORDER BY i.occurred_at DESC LIMIT ? OFFSET ?`
	args = append(args, page.Limit, page.Offset)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	var interactions []domain.InteractionWithContact
	for rows.Next() {
		var item domain.InteractionWithContact
		var summary, outcome, sentiment sql.NullString
		var contact domain.Contact
		var lastName, email, phone, jobTitle, companyID sql.NullString

		if err := rows.Scan(&item.ID, &item.UserID, &item.ContactID, &item.Type,
			&summary, &outcome, &sentiment, &item.OccurredAt, &item.CreatedAt,
			&contact.ID, &contact.UserID, &contact.FirstName, &lastName,
			&email, &phone, &jobTitle, &companyID,
			&contact.CreatedAt, &contact.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning interaction: %w", err)
		}

		item.Summary = summary.String
		item.Outcome = outcome.String
		item.Sentiment = domain.Sentiment(sentiment.String)
		contact.LastName = lastName.String
		contact.Email = email.String
		contact.Phone = phone.String
		contact.JobTitle = jobTitle.String
		contact.CompanyID = companyID.String
		item.Contact = &contact

		interactions = append(interactions, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating interactions: %w", err)
	}

	return interactions, total, nil
}

// Update modifies an existing interaction.
func (s *interactionStore) Update(ctx context.Context, interaction *domain.Interaction) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE interactions
		SET type = ?, summary = ?, outcome = ?, sentiment = ?, occurred_at = ?
		WHERE id = ? AND user_id = ?
	`, interaction.Type, nullString(interaction.Summary), nullString(interaction.Outcome),
		nullString(string(interaction.Sentiment)), interaction.OccurredAt,
		interaction.ID, interaction.UserID)

	if err != nil {
		return fmt.Errorf("updating interaction: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an interaction.
func (s *interactionStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM interactions WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting interaction: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of interactions the user owns.
func (s *interactionStore) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM interactions WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting interactions: %w", err)
	}
	return count, nil
}

// CountSince returns the number of interactions that occurred at or
// after the given time.
func (s *interactionStore) CountSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var count int64
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM interactions WHERE user_id = ? AND occurred_at >= ?",
		userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting recent interactions: %w", err)
	}
	return count, nil
}

// scanInteraction reads one interaction row.
func scanInteraction(row interface{ Scan(...any) error }) (*domain.Interaction, error) {
	var interaction domain.Interaction
	var summary, outcome, sentiment sql.NullString
	if err := row.Scan(&interaction.ID, &interaction.UserID, &interaction.ContactID,
		&interaction.Type, &summary, &outcome, &sentiment,
		&interaction.OccurredAt, &interaction.CreatedAt); err != nil {
		return nil, err
	}
	interaction.Summary = summary.String
	interaction.Outcome = outcome.String
	interaction.Sentiment = domain.Sentiment(sentiment.String)
	return &interaction, nil
}
