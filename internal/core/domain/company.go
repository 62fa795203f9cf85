package domain

import "time"

// Company is an organisation a user tracks contacts against.
type Company struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Website     string    `json:"website,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	Address     string    `json:"address,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompanySortBy enumerates the supported company list orderings.
type CompanySortBy string

// Company sort keys.
const (
	CompanySortByName      CompanySortBy = "name"
	CompanySortByCreatedAt CompanySortBy = "createdAt"
)

// CompanyListOptions shapes a paginated company list query.
type CompanyListOptions struct {
	Page   PageParams
	SortBy CompanySortBy
	Order  SortOrder

	// Query is an optional substring filter over name.
	Query string
}

// CompanyWithContacts is a company hydrated with its contacts for detail
// and list responses.
type CompanyWithContacts struct {
	Company
	Contacts []Contact `json:"contacts"`
}
