package mcp

import (
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server needs,
// plus the user every request is bound to. MCP has no per-request auth,
// so the server acts for exactly one configured user.
type Ports struct {
	// UserID is the user all tool calls operate on.
	UserID string

	// Search answers contact and company search queries.
	Search driving.SearchService

	// Contacts manages contacts.
	Contacts driving.ContactService

	// Companies manages companies. Optional; when set the get_company
	// tool is registered. Company search is served by Search either way.
	Companies driving.CompanyService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.UserID == "" {
		return ErrMissingUserID
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Contacts == nil {
		return ErrMissingContactService
	}
	return nil
}
