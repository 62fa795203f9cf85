package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// noteStore implements driven.NoteStore.
type noteStore struct {
	store *Store
}

var _ driven.NoteStore = (*noteStore)(nil)

const noteColumns = "id, user_id, content, contact_id, company_id, interaction_id, created_at, updated_at"

// Create stores a new note.
func (s *noteStore) Create(ctx context.Context, note *domain.Note) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO notes (`+noteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, note.ID, note.UserID, note.Content, nullString(note.ContactID),
		nullString(note.CompanyID), nullString(note.InteractionID),
		note.CreatedAt, note.UpdatedAt)

	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}
	return nil
}

// Get retrieves a note by ID.
func (s *noteStore) Get(ctx context.Context, userID, id string) (*domain.Note, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+noteColumns+` FROM notes WHERE id = ? AND user_id = ?
	`, id, userID)

	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning note: %w", err)
	}
	return note, nil
}

// List returns a page of notes matching the filters, newest first, plus
// the total row count.
func (s *noteStore) List(ctx context.Context, userID string, filters domain.NoteFilters, page domain.PageParams) ([]domain.Note, int64, error) {
	where := " WHERE user_id = ?"
	args := []any{userID}
	if filters.ContactID != "" {
		where += " AND contact_id = ?"
		args = append(args, filters.ContactID)
	}
	if filters.CompanyID != "" {
		where += " AND company_id = ?"
		args = append(args, filters.CompanyID)
	}
	if filters.InteractionID != "" {
		where += " AND interaction_id = ?"
		args = append(args, filters.InteractionID)
	}
	if filters.Query != "" {
		where += " AND content LIKE ?"
		args = append(args, "%"+filters.Query+"%")
	}

	var total int64
	if err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notes"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting notes: %w", err)
	}

	query := "SELECT " + noteColumns + " FROM notes" + where +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, page.Limit, page.Offset)

	notes, err := s.queryNotes(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// ListByContact returns every note attached to a contact, newest first.
func (s *noteStore) ListByContact(ctx context.Context, userID, contactID string) ([]domain.Note, error) {
	return s.queryNotes(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE user_id = ? AND contact_id = ?
		ORDER BY created_at DESC
	`, userID, contactID)
}

// Update modifies an existing note.
func (s *noteStore) Update(ctx context.Context, note *domain.Note) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE notes SET content = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, note.Content, note.UpdatedAt, note.ID, note.UserID)

	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a note.
func (s *noteStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM notes WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of notes the user owns.
func (s *noteStore) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notes WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting notes: %w", err)
	}
	return count, nil
}

func (s *noteStore) queryNotes(ctx context.Context, query string, args ...any) ([]domain.Note, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	return notes, nil
}

// scanNote reads one note row.
func scanNote(row interface{ Scan(...any) error }) (*domain.Note, error) {
	var note domain.Note
	var contactID, companyID, interactionID sql.NullString
	if err := row.Scan(&note.ID, &note.UserID, &note.Content, &contactID,
		&companyID, &interactionID, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}
	note.ContactID = contactID.String
	note.CompanyID = companyID.String
	note.InteractionID = interactionID.String
	return &note, nil
}
