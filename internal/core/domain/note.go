package domain

import "time"

// Note is free-form text attached to a contact, company, interaction,
// or nothing at all. Note content is part of a contact's indexable text,
// so note writes trigger contact re-indexing.
type Note struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Content       string    `json:"content"`
	ContactID     string    `json:"contactId,omitempty"`
	CompanyID     string    `json:"companyId,omitempty"`
	InteractionID string    `json:"interactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NoteFilters narrows note list queries.
type NoteFilters struct {
	ContactID     string
	CompanyID     string
	InteractionID string

	// Query is an optional substring filter over content.
	Query string
}
