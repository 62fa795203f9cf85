package domain

import "time"

// Contact is a person in a user's CRM. Only FirstName is mandatory;
// everything else is progressively filled in as the relationship develops.
type Contact struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	JobTitle  string    `json:"jobTitle,omitempty"`
	CompanyID string    `json:"companyId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactWithCompany is a contact hydrated with its company, if any.
type ContactWithCompany struct {
	Contact
	Company *Company `json:"company,omitempty"`

	// LastInteractionAt is the occurrence time of the most recent
	// interaction, used by list views. Nil when none exist.
	LastInteractionAt *time.Time `json:"lastInteractionAt,omitempty"`
}

// ContactDetail is the full detail view: company, recent interactions,
// notes, and pending notifications.
type ContactDetail struct {
	Contact
	Company       *Company       `json:"company,omitempty"`
	Interactions  []Interaction  `json:"interactions"`
	Notes         []Note         `json:"notes"`
	Notifications []Notification `json:"notifications"`
}

// ContactSortBy enumerates the supported contact list orderings.
type ContactSortBy string

// Contact sort keys.
const (
	ContactSortByName            ContactSortBy = "name"
	ContactSortByCreatedAt       ContactSortBy = "createdAt"
	ContactSortByLastInteraction ContactSortBy = "lastInteractionAt"
)

// ContactListOptions shapes a paginated contact list query.
type ContactListOptions struct {
	Page   PageParams
	SortBy ContactSortBy
	Order  SortOrder

	// CompanyID, when set, restricts results to one company.
	CompanyID string

	// Query is an optional substring filter over first name, last name
	// and email.
	Query string
}

// SortOrder is an ascending/descending toggle for list queries.
type SortOrder string

// Sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)
