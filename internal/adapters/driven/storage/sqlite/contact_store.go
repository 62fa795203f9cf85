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

// contactStore implements driven.ContactStore.
type contactStore struct {
	store *Store
}

var _ driven.ContactStore = (*contactStore)(nil)

const contactColumns = "id, user_id, first_name, last_name, email, phone, job_title, company_id, created_at, updated_at"

// hydratedContactQuery selects a contact row, its company row (all
// nullable) and the most recent interaction time.
const hydratedContactQuery = `
	SELECT c.id, c.user_id, c.first_name, c.last_name, c.email, c.phone,
	       c.job_title, c.company_id, c.created_at, c.updated_at,
	       co.id, co.name, co.website, co.industry, co.address, co.description,
	       co.created_at, co.updated_at,
	       (SELECT MAX(occurred_at) FROM interactions i WHERE i.contact_id = c.id) AS last_interaction_at
	FROM contacts c
	LEFT JOIN companies co ON co.id = c.company_id`

// Create stores a new contact.
func (s *contactStore) Create(ctx context.Context, contact *domain.Contact) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO contacts (`+contactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.ID, contact.UserID, contact.FirstName, nullString(contact.LastName),
		nullString(contact.Email), nullString(contact.Phone), nullString(contact.JobTitle),
		nullString(contact.CompanyID), contact.CreatedAt, contact.UpdatedAt)

	if err != nil {
		return fmt.Errorf("inserting contact: %w", err)
	}
	return nil
}

// Get retrieves a contact by ID.
func (s *contactStore) Get(ctx context.Context, userID, id string) (*domain.Contact, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+contactColumns+` FROM contacts WHERE id = ? AND user_id = ?
	`, id, userID)

	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning contact: %w", err)
	}
	return contact, nil
}

// GetWithCompany retrieves a contact hydrated with its company.
func (s *contactStore) GetWithCompany(ctx context.Context, userID, id string) (*domain.ContactWithCompany, error) {
	row := s.store.db.QueryRowContext(ctx,
		hydratedContactQuery+" WHERE c.id = ? AND c.user_id = ?", id, userID)

	contact, err := scanHydratedContact(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning contact: %w", err)
	}
	return contact, nil
}

// GetDetail retrieves a contact with its company, recent interactions,
// notes and pending notifications.
func (s *contactStore) GetDetail(ctx context.Context, userID, id string) (*domain.ContactDetail, error) {
	withCompany, err := s.GetWithCompany(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.ContactDetail{
		Contact:       withCompany.Contact,
		Company:       withCompany.Company,
		Interactions:  []domain.Interaction{},
		Notes:         []domain.Note{},
		Notifications: []domain.Notification{},
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+interactionColumns+` FROM interactions
		WHERE contact_id = ? AND user_id = ?
		ORDER BY occurred_at DESC LIMIT 10
	`, id, userID)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		detail.Interactions = append(detail.Interactions, *interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interactions: %w", err)
	}

	noteRows, err := s.store.db.QueryContext(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE contact_id = ? AND user_id = ?
		ORDER BY created_at DESC LIMIT 10
	`, id, userID)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer noteRows.Close()
	for noteRows.Next() {
		note, err := scanNote(noteRows)
		if err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		detail.Notes = append(detail.Notes, *note)
	}
	if err := noteRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}

	notifRows, err := s.store.db.QueryContext(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE contact_id = ? AND user_id = ? AND is_completed = 0
		ORDER BY due_date ASC
	`, id, userID)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer notifRows.Close()
	for notifRows.Next() {
		notification, err := scanNotification(notifRows)
		if err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		detail.Notifications = append(detail.Notifications, *notification)
	}
	if err := notifRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notifications: %w", err)
	}

	return detail, nil
}

// List returns a page of contacts hydrated with company and last
// interaction time, plus the total row count for the same filters.
func (s *contactStore) List(ctx context.Context, userID string, opts domain.ContactListOptions) ([]domain.ContactWithCompany, int64, error) {
	where := " WHERE c.user_id = ?"
	args := []any{userID}
	if opts.CompanyID != "" {
		where += " AND c.company_id = ?"
		args = append(args, opts.CompanyID)
	}
	if opts.Query != "" {
		where += " AND (c.first_name LIKE ? OR c.last_name LIKE ? OR c.email LIKE ?)"
		pattern := "%" + opts.Query + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var total int64
	if err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contacts c"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting contacts: %w", err)
	}

	var orderBy string
	switch opts.SortBy {
	case domain.ContactSortByName:
		orderBy = "c.first_name COLLATE NOCASE"
	case domain.ContactSortByLastInteraction:
		orderBy = "last_interaction_at"
	default:
		orderBy = "c.created_at"
	}
	direction := "ASC"
	if opts.Order == domain.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf("%s%s ORDER BY %s %s LIMIT ? OFFSET ?",
		hydratedContactQuery, where, orderBy, direction)
	args = append(args, opts.Page.Limit, opts.Page.Offset)

	contacts, err := s.queryHydrated(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

// ListAll returns every contact the user owns, hydrated with company.
func (s *contactStore) ListAll(ctx context.Context, userID string) ([]domain.ContactWithCompany, error) {
	return s.queryHydrated(ctx,
		hydratedContactQuery+" WHERE c.user_id = ? ORDER BY c.created_at", userID)
}

// Update modifies an existing contact.
func (s *contactStore) Update(ctx context.Context, contact *domain.Contact) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE contacts
		SET first_name = ?, last_name = ?, email = ?, phone = ?, job_title = ?,
		    company_id = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, contact.FirstName, nullString(contact.LastName), nullString(contact.Email),
		nullString(contact.Phone), nullString(contact.JobTitle),
		nullString(contact.CompanyID), contact.UpdatedAt, contact.ID, contact.UserID)

	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a contact; interactions, notes and notifications go
// with it via cascading constraints.
func (s *contactStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM contacts WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of contacts the user owns.
func (s *contactStore) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contacts WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting contacts: %w", err)
	}
	return count, nil
}

// CountCreatedSince returns the number of contacts created at or after
// the given time.
func (s *contactStore) CountCreatedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var count int64
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contacts WHERE user_id = ? AND created_at >= ?",
		userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting recent contacts: %w", err)
	}
	return count, nil
}

func (s *contactStore) queryHydrated(ctx context.Context, query string, args ...any) ([]domain.ContactWithCompany, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.ContactWithCompany
	for rows.Next() {
		contact, err := scanHydratedContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}
	return contacts, nil
}

// scanContact reads one bare contact row.
func scanContact(row interface{ Scan(...any) error }) (*domain.Contact, error) {
	var contact domain.Contact
	var lastName, email, phone, jobTitle, companyID sql.NullString
	if err := row.Scan(&contact.ID, &contact.UserID, &contact.FirstName, &lastName,
		&email, &phone, &jobTitle, &companyID, &contact.CreatedAt, &contact.UpdatedAt); err != nil {
		return nil, err
	}
	contact.LastName = lastName.String
	contact.Email = email.String
	contact.Phone = phone.String
	contact.JobTitle = jobTitle.String
	contact.CompanyID = companyID.String
	return &contact, nil
}

// scanHydratedContact reads a contact row joined with its nullable
// company and last interaction time.
func scanHydratedContact(row interface{ Scan(...any) error }) (*domain.ContactWithCompany, error) {
	var contact domain.ContactWithCompany
	var lastName, email, phone, jobTitle, companyID sql.NullString
	var coID, coName, coWebsite, coIndustry, coAddress, coDescription sql.NullString
	var coCreatedAt, coUpdatedAt, lastInteractionAt sql.NullTime

	if err := row.Scan(&contact.ID, &contact.UserID, &contact.FirstName, &lastName,
		&email, &phone, &jobTitle, &companyID, &contact.CreatedAt, &contact.UpdatedAt,
		&coID, &coName, &coWebsite, &coIndustry, &coAddress, &coDescription,
		&coCreatedAt, &coUpdatedAt, &lastInteractionAt); err != nil {
		return nil, err
	}

	contact.LastName = lastName.String
	contact.Email = email.String
	contact.Phone = phone.String
	contact.JobTitle = jobTitle.String
	contact.CompanyID = companyID.String

	if coID.Valid {
		contact.Company = &domain.Company{
			ID:          coID.String,
			UserID:      contact.UserID,
			Name:        coName.String,
			Website:     coWebsite.String,
			Industry:    coIndustry.String,
			Address:     coAddress.String,
			Description: coDescription.String,
			CreatedAt:   coCreatedAt.Time,
			UpdatedAt:   coUpdatedAt.Time,
		}
	}
	if lastInteractionAt.Valid {
		t := lastInteractionAt.Time
		contact.LastInteractionAt = &t
	}
	return &contact, nil
}
