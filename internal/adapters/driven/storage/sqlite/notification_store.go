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

// notificationStore implements driven.NotificationStore.
type notificationStore struct {
	store *Store
}

var _ driven.NotificationStore = (*notificationStore)(nil)

const notificationColumns = "id, user_id, contact_id, interaction_id, type, title, description, due_date, is_completed, completed_at, created_at"

// Create stores a new notification.
func (s *notificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, notification.ID, notification.UserID, nullString(notification.ContactID),
		nullString(notification.InteractionID), notification.Type, notification.Title,
		nullString(notification.Description), nullTime(notification.DueDate),
		notification.IsCompleted, nullTime(notification.CompletedAt), notification.CreatedAt)

	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

// Get retrieves a notification by ID.
func (s *notificationStore) Get(ctx context.Context, userID, id string) (*domain.Notification, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+notificationColumns+` FROM notifications WHERE id = ? AND user_id = ?
	`, id, userID)

	notification, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning notification: %w", err)
	}
	return notification, nil
}

// List returns a page of incomplete notifications matching the status
// view, due soonest first with undated reminders last, plus the total
// row count.
func (s *notificationStore) List(ctx context.Context, userID string, status domain.NotificationStatus, page domain.PageParams) ([]domain.NotificationWithRefs, int64, error) {
	where := " WHERE n.user_id = ? AND n.is_completed = 0"
	args := []any{userID}

	now := time.Now().UTC()
	switch status {
	case domain.NotificationUpcoming:
		where += " AND n.due_date IS NOT NULL AND n.due_date >= ?"
		args = append(args, now)
	case domain.NotificationOverdue:
		where += " AND n.due_date IS NOT NULL AND n.due_date < ?"
		args = append(args, now)
	}

	var total int64
	if err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications n"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting notifications: %w", err)
	}

	query := `
		SELECT n.id, n.user_id, n.contact_id, n.interaction_id, n.type, n.title,
		       n.description, n.due_date, n.is_completed, n.completed_at, n.created_at,
		       c.id, c.first_name, c.last_name, c.email, c.company_id,
		       i.id, i.type, i.summary, i.occurred_at
		FROM notifications n
		LEFT JOIN contacts c ON c.id = n.contact_id
		LEFT JOIN interactions i ON i.id = n.interaction_id` + where + `
		ORDER BY n.due_date IS NULL, n.due_date ASC LIMIT ? OFFSET ?`
	args = append(args, page.Limit, page.Offset)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.NotificationWithRefs
	for rows.Next() {
		var item domain.NotificationWithRefs
		var contactID, interactionID, description sql.NullString
		var dueDate, completedAt sql.NullTime
		var cID, cFirstName, cLastName, cEmail, cCompanyID sql.NullString
		var iID, iType, iSummary sql.NullString
		var iOccurredAt sql.NullTime

		if err := rows.Scan(&item.ID, &item.UserID, &contactID, &interactionID,
			&item.Type, &item.Title, &description, &dueDate, &item.IsCompleted,
			&completedAt, &item.CreatedAt,
			&cID, &cFirstName, &cLastName, &cEmail, &cCompanyID,
			&iID, &iType, &iSummary, &iOccurredAt); err != nil {
			return nil, 0, fmt.Errorf("scanning notification: %w", err)
		}

		item.ContactID = contactID.String
		item.InteractionID = interactionID.String
		item.Description = description.String
		if dueDate.Valid {
			t := dueDate.Time
			item.DueDate = &t
		}
		if completedAt.Valid {
			t := completedAt.Time
			item.CompletedAt = &t
		}
		if cID.Valid {
			item.Contact = &domain.Contact{
				ID:        cID.String,
				UserID:    item.UserID,
				FirstName: cFirstName.String,
				LastName:  cLastName.String,
				Email:     cEmail.String,
				CompanyID: cCompanyID.String,
			}
		}
		if iID.Valid {
			item.Interaction = &domain.Interaction{
				ID:         iID.String,
				UserID:     item.UserID,
				ContactID:  item.ContactID,
				Type:       domain.InteractionType(iType.String),
				Summary:    iSummary.String,
				OccurredAt: iOccurredAt.Time,
			}
		}

		notifications = append(notifications, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating notifications: %w", err)
	}

	return notifications, total, nil
}

// Update modifies an existing notification.
func (s *notificationStore) Update(ctx context.Context, notification *domain.Notification) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE notifications
		SET type = ?, title = ?, description = ?, due_date = ?, is_completed = ?, completed_at = ?
		WHERE id = ? AND user_id = ?
	`, notification.Type, notification.Title, nullString(notification.Description),
		nullTime(notification.DueDate), notification.IsCompleted,
		nullTime(notification.CompletedAt), notification.ID, notification.UserID)

	if err != nil {
		return fmt.Errorf("updating notification: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a notification.
func (s *notificationStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting notification: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of incomplete notifications in the
// given due-date view.
func (s *notificationStore) CountByStatus(ctx context.Context, userID string, status domain.NotificationStatus) (int64, error) {
	query := "SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_completed = 0"
	args := []any{userID}

	switch status {
	case domain.NotificationUpcoming:
		query += " AND due_date IS NOT NULL AND due_date >= ?"
		args = append(args, time.Now().UTC())
	case domain.NotificationOverdue:
		query += " AND due_date IS NOT NULL AND due_date < ?"
		args = append(args, time.Now().UTC())
	}

	var count int64
	if err := s.store.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting notifications: %w", err)
	}
	return count, nil
}

// nullTime converts a nil time pointer to a SQL NULL.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// scanNotification reads one notification row.
func scanNotification(row interface{ Scan(...any) error }) (*domain.Notification, error) {
	var notification domain.Notification
	var contactID, interactionID, description sql.NullString
	var dueDate, completedAt sql.NullTime
	if err := row.Scan(&notification.ID, &notification.UserID, &contactID,
		&interactionID, &notification.Type, &notification.Title, &description,
		&dueDate, &notification.IsCompleted, &completedAt, &notification.CreatedAt); err != nil {
		return nil, err
	}
	notification.ContactID = contactID.String
	notification.InteractionID = interactionID.String
	notification.Description = description.String
	if dueDate.Valid {
		t := dueDate.Time
		notification.DueDate = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		notification.CompletedAt = &t
	}
	return &notification, nil
}
