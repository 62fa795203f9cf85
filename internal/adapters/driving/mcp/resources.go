package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Anchor resources.
	uriScheme = "anchor://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing contacts.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "contacts",
		Name:        "contacts",
		Description: "List of the user's contacts",
		MIMEType:    "application/json",
	}, s.handleContactsResource)

	// Template for contact detail.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "contacts/{contactId}",
		Name:        "contact-detail",
		Description: "Full detail of a specific contact",
		MIMEType:    "application/json",
	}, s.handleContactDetailResource)
}

// handleContactsResource returns the user's contacts, one page at the
// maximum page size.
func (s *Server) handleContactsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	page, err := s.ports.Contacts.List(ctx, s.ports.UserID, domain.ContactListOptions{
		Page: domain.PageParams{Limit: domain.MaxPageLimit},
	})
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}

	infos := make([]ContactOutput, len(page.Data))
	for i := range page.Data {
		infos[i] = toContactOutput(page.Data[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling contacts: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleContactDetailResource returns one contact's full detail view.
func (s *Server) handleContactDetailResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	contactID := extractContactID(req.Params.URI)
	if contactID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	detail, err := s.ports.Contacts.Get(ctx, s.ports.UserID, contactID)
	if err != nil {
		return nil, fmt.Errorf("getting contact: %w", err)
	}

	data, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling contact: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractContactID extracts the contact ID from a URI like
// anchor://contacts/{contactId}.
func extractContactID(uri string) string {
	const prefix = uriScheme + "contacts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
