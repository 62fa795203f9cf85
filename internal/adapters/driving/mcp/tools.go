package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// SearchInput is the input schema for the search_contacts tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query, e.g. a name, email or company"`
}

// SearchOutput is the output schema for the search_contacts tool.
type SearchOutput struct {
	BestMatches     []domain.SearchableContact `json:"best_matches"`
	FuzzyMatches    []domain.SearchableContact `json:"fuzzy_matches"`
	SemanticMatches []ContactOutput            `json:"semantic_matches"`
}

// SearchCompaniesInput is the input schema for the search_companies tool.
type SearchCompaniesInput struct {
	Query string `json:"query" jsonschema:"the search query over company name, industry and description"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchCompaniesOutput is the output schema for the search_companies tool.
type SearchCompaniesOutput struct {
	Companies []domain.Company `json:"companies"`
	Count     int              `json:"count"`
}

// GetCompanyInput is the input schema for the get_company tool.
type GetCompanyInput struct {
	CompanyID string `json:"company_id" jsonschema:"the company's ID"`
}

// GetContactInput is the input schema for the get_contact tool.
type GetContactInput struct {
	ContactID string `json:"contact_id" jsonschema:"the contact's ID"`
}

// CreateContactInput is the input schema for the create_contact tool.
type CreateContactInput struct {
	FirstName string `json:"first_name" jsonschema:"the contact's first name (required)"`
	LastName  string `json:"last_name,omitempty" jsonschema:"the contact's last name"`
	Email     string `json:"email,omitempty" jsonschema:"the contact's email address"`
	Phone     string `json:"phone,omitempty" jsonschema:"the contact's phone number"`
	JobTitle  string `json:"job_title,omitempty" jsonschema:"the contact's job title"`
	CompanyID string `json:"company_id,omitempty" jsonschema:"ID of the company the contact works at"`
}

// ContactOutput is a single contact in tool results.
type ContactOutput struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	JobTitle    string `json:"job_title,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_contacts",
		Description: "Search the user's contacts by name, email, company or free text",
	}, s.handleSearchContacts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_companies",
		Description: "Search the user's companies by name, industry or description",
	}, s.handleSearchCompanies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Get a contact's full details including interactions, notes and reminders",
	}, s.handleGetContact)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_contact",
		Description: "Create a new contact",
	}, s.handleCreateContact)

	if s.ports.Companies != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "get_company",
			Description: "Get a company's full details including the contacts who work there",
		}, s.handleGetCompany)
	}
}

// handleSearchContacts handles the search_contacts tool invocation.
func (s *Server) handleSearchContacts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	result, err := s.ports.Search.HybridSearch(ctx, s.ports.UserID, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		BestMatches:     result.BestMatches,
		FuzzyMatches:    result.FuzzyMatches,
		SemanticMatches: make([]ContactOutput, len(result.SemanticMatches)),
	}
	for i := range result.SemanticMatches {
		output.SemanticMatches[i] = toContactOutput(result.SemanticMatches[i])
	}
	return nil, output, nil
}

// handleSearchCompanies handles the search_companies tool invocation.
func (s *Server) handleSearchCompanies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchCompaniesInput,
) (*mcp.CallToolResult, SearchCompaniesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	companies, err := s.ports.Search.FuzzySearchCompanies(ctx, s.ports.UserID, input.Query, limit)
	if err != nil {
		return nil, SearchCompaniesOutput{}, err
	}

	return nil, SearchCompaniesOutput{
		Companies: companies,
		Count:     len(companies),
	}, nil
}

// handleGetContact handles the get_contact tool invocation.
func (s *Server) handleGetContact(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetContactInput,
) (*mcp.CallToolResult, *domain.ContactDetail, error) {
	detail, err := s.ports.Contacts.Get(ctx, s.ports.UserID, input.ContactID)
	if err != nil {
		return nil, nil, err
	}
	return nil, detail, nil
}

// handleGetCompany handles the get_company tool invocation.
func (s *Server) handleGetCompany(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetCompanyInput,
) (*mcp.CallToolResult, *domain.CompanyWithContacts, error) {
	company, err := s.ports.Companies.Get(ctx, s.ports.UserID, input.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	return nil, company, nil
}

// handleCreateContact handles the create_contact tool invocation.
func (s *Server) handleCreateContact(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateContactInput,
) (*mcp.CallToolResult, *domain.Contact, error) {
	contact, err := s.ports.Contacts.Create(ctx, s.ports.UserID, driving.CreateContactInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		JobTitle:  input.JobTitle,
		CompanyID: input.CompanyID,
	})
	if err != nil {
		return nil, nil, err
	}
	return nil, contact, nil
}

func toContactOutput(contact domain.ContactWithCompany) ContactOutput {
	output := ContactOutput{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		JobTitle:  contact.JobTitle,
	}
	if contact.Company != nil {
		output.CompanyName = contact.Company.Name
	}
	return output
}
