package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// companyStore implements driven.CompanyStore.
type companyStore struct {
	store *Store
}

var _ driven.CompanyStore = (*companyStore)(nil)

const companyColumns = "id, user_id, name, website, industry, address, description, created_at, updated_at"

// Create stores a new company.
func (s *companyStore) Create(ctx context.Context, company *domain.Company) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO companies (`+companyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, company.ID, company.UserID, company.Name, nullString(company.Website),
		nullString(company.Industry), nullString(company.Address),
		nullString(company.Description), company.CreatedAt, company.UpdatedAt)

	if err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}
	return nil
}

// Get retrieves a company by ID.
func (s *companyStore) Get(ctx context.Context, userID, id string) (*domain.Company, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+companyColumns+` FROM companies WHERE id = ? AND user_id = ?
	`, id, userID)

	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning company: %w", err)
	}
	return company, nil
}

// GetWithContacts retrieves a company together with its contacts.
func (s *companyStore) GetWithContacts(ctx context.Context, userID, id string) (*domain.CompanyWithContacts, error) {
	company, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	contacts, err := s.contactsForCompanies(ctx, userID, []string{id})
	if err != nil {
		return nil, err
	}

	result := &domain.CompanyWithContacts{Company: *company, Contacts: []domain.Contact{}}
	if list, ok := contacts[id]; ok {
		result.Contacts = list
	}
	return result, nil
}

// List returns a page of companies plus the total row count for the
// same filters.
func (s *companyStore) List(ctx context.Context, userID string, opts domain.CompanyListOptions) ([]domain.CompanyWithContacts, int64, error) {
	where := "WHERE user_id = ?"
	args := []any{userID}
	if opts.Query != "" {
		where += " AND name LIKE ?"
		args = append(args, "%"+opts.Query+"%")
	}

	var total int64
	if err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM companies "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting companies: %w", err)
	}

	orderBy := "name COLLATE NOCASE"
	if opts.SortBy == domain.CompanySortByCreatedAt {
		orderBy = "created_at"
	}
	direction := "ASC"
	if opts.Order == domain.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf("SELECT %s FROM companies %s ORDER BY %s %s LIMIT ? OFFSET ?",
		companyColumns, where, orderBy, direction)
	args = append(args, opts.Page.Limit, opts.Page.Offset)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.CompanyWithContacts
	var ids []string
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning company: %w", err)
		}
		companies = append(companies, domain.CompanyWithContacts{
			Company:  *company,
			Contacts: []domain.Contact{},
		})
		ids = append(ids, company.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating companies: %w", err)
	}

	contactsByCompany, err := s.contactsForCompanies(ctx, userID, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range companies {
		if list, ok := contactsByCompany[companies[i].ID]; ok {
			companies[i].Contacts = list
		}
	}

	return companies, total, nil
}

// Update modifies an existing company.
func (s *companyStore) Update(ctx context.Context, company *domain.Company) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE companies
		SET name = ?, website = ?, industry = ?, address = ?, description = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, company.Name, nullString(company.Website), nullString(company.Industry),
		nullString(company.Address), nullString(company.Description),
		company.UpdatedAt, company.ID, company.UserID)

	if err != nil {
		return fmt.Errorf("updating company: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a company; contacts are detached by the FK's SET NULL.
func (s *companyStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.store.db.ExecContext(ctx,
		"DELETE FROM companies WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of companies the user owns.
func (s *companyStore) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM companies WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting companies: %w", err)
	}
	return count, nil
}

// contactsForCompanies loads the contacts of the given companies in one
// query, keyed by company ID.
func (s *companyStore) contactsForCompanies(ctx context.Context, userID string, companyIDs []string) (map[string][]domain.Contact, error) {
	result := make(map[string][]domain.Contact)
	if len(companyIDs) == 0 {
		return result, nil
	}

	query := "SELECT " + contactColumns + " FROM contacts WHERE user_id = ? AND company_id IN (?" +
		repeatPlaceholder(len(companyIDs)-1) + ") ORDER BY first_name COLLATE NOCASE"
	args := make([]any, 0, len(companyIDs)+1)
	args = append(args, userID)
	for _, id := range companyIDs {
		args = append(args, id)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying company contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		result[contact.CompanyID] = append(result[contact.CompanyID], *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating company contacts: %w", err)
	}
	return result, nil
}

// repeatPlaceholder returns n copies of ", ?" for IN clauses.
func repeatPlaceholder(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ", ?"
	}
	return out
}

// scanCompany reads one company row from a row scanner.
func scanCompany(row interface{ Scan(...any) error }) (*domain.Company, error) {
	var company domain.Company
	var website, industry, address, description sql.NullString
	if err := row.Scan(&company.ID, &company.UserID, &company.Name, &website,
		&industry, &address, &description, &company.CreatedAt, &company.UpdatedAt); err != nil {
		return nil, err
	}
	company.Website = website.String
	company.Industry = industry.String
	company.Address = address.String
	company.Description = description.String
	return &company, nil
}
