package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// toolset is the closed set of CRM tools the assistant may call. Every
// tool runs against the calling user's data only; the model never
// chooses the user.
type toolset struct {
	search        driving.SearchService
	contacts      driving.ContactService
	companies     driving.CompanyService
	interactions  driving.InteractionService
	notes         driving.NoteService
	notifications driving.NotificationService
}

func newToolset(
	search driving.SearchService,
	contacts driving.ContactService,
	companies driving.CompanyService,
	interactions driving.InteractionService,
	notes driving.NoteService,
	notifications driving.NotificationService,
) *toolset {
	return &toolset{
		search:        search,
		contacts:      contacts,
		companies:     companies,
		interactions:  interactions,
		notes:         notes,
		notifications: notifications,
	}
}

// schema is shorthand for an inline JSON Schema literal.
func schema(s string) json.RawMessage { return json.RawMessage(s) }

var emptySchema = schema(`{"type":"object","properties":{}}`)

var querySchema = schema(`{
	"type": "object",
	"properties": {
		"query": {"type": "string", "description": "Free-text search query"}
	},
	"required": ["query"]
}`)

var contactIDSchema = schema(`{
	"type": "object",
	"properties": {
		"contactId": {"type": "string", "description": "ID of the contact"}
	},
	"required": ["contactId"]
}`)

var companyIDSchema = schema(`{
	"type": "object",
	"properties": {
		"companyId": {"type": "string", "description": "ID of the company"}
	},
	"required": ["companyId"]
}`)

// defs returns the tool definitions sent to the model.
func (t *toolset) defs() []driven.ToolDef {
	return []driven.ToolDef{
		{
			Name:        "search",
			Description: "Search across contacts using natural language. Use this before creating new records to avoid duplicates.",
			Parameters:  querySchema,
		},
		{
			Name:        "searchCompanies",
			Description: "Search for companies by name, industry, or description",
			Parameters:  querySchema,
		},
		{
			Name:        "listContacts",
			Description: "List all contacts, optionally filtered by company",
			Parameters: schema(`{
				"type": "object",
				"properties": {
					"companyId": {"type": "string", "description": "Only list contacts of this company"}
				}
			}`),
		},
		{
			Name:        "createContact",
			Description: "Create a new contact. Search first to avoid duplicates. Can auto-create the company if companyName is provided.",
			Parameters: schema(`{
				"type": "object",
				"properties": {
					"firstName": {"type": "string"},
					"lastName": {"type": "string"},
					"email": {"type": "string"},
					"phone": {"type": "string"},
					"jobTitle": {"type": "string"},
					"companyName": {"type": "string", "description": "Company name; created if it does not exist"}
				},
				"required": ["firstName"]
			}`),
		},
		{
			Name:        "updateContact",
			Description: "Update an existing contact's information",
			Parameters: schema(`{
				"type": "object",
				"properties": {
					"contactId": {"type": "string"},
					"firstName": {"type": "string"},
					"lastName": {"type": "string"},
					"email": {"type": "string"},
					"phone": {"type": "string"},
					"jobTitle": {"type": "string"}
				},
				"required": ["contactId"]
			}`),
		},
		{
			Name:        "getContactDetails",
			Description: "Get full details about a contact including interactions, notes, and pending notifications",
			Parameters:  contactIDSchema,
		},
		{
			Name:        "deleteContact",
			Description: "Request to delete a contact. Returns contact details for user confirmation. Call confirmDeleteContact after the user confirms.",
			Parameters:  contactIDSchema,
		},
		{
			Name:        "confirmDeleteContact",
			Description: "Execute contact deletion after the user has confirmed. Only call this after deleteContact and explicit user confirmation.",
			Parameters:  contactIDSchema,
		},
		{
			Name:        "listCompanies",
			Description: "List all companies",
			Parameters:  emptySchema,
		},
		{
			Name:        "createCompany",
			Description: "Create a new company. Search first to avoid duplicates.",
			Parameters: schema(`{
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"website": {"type": "string"},
					"industry": {"type": "string"},
					"address": {"type": "string"},
					"description": {"type": "string"}
				},
				"required": ["name"]
			}`),
		},
		{
			Name:        "updateCompany",
			Description: "Update an existing company's information",
			Parameters: schema(`{
				"type": "object",
				"properties": {
					"companyId": {"type": "string"},
					"name": {"type": "string"},
					"website": {"type": "string"},
					"industry": {"type": "string"},
					"address": {"type": "string"},
					"description": {"type": "string"}
				},
				"required": ["companyId"]
			}`),
		},
		{
			Name:        "getCompanyDetails",
			Description: "Get full details about a company including all contacts",
			Parameters:  companyIDSchema,
		},
		{
			Name:        "deleteCompany",
			Description: "Request to delete a company. Returns company details for user confirmation. Call confirmDeleteCompany after the user confirms.",
			Parameters:  companyIDSchema,
		},
		{
			Name:        "confirmDeleteCompany",
			Description: "Execute company deletion after the user has confirmed. Only call this after deleteCompany and explicit user confirmation.",
			Parameters:  companyIDSchema,
		},
		{
			Name:        "addInteraction",
			Description: "Log an interaction (call, email, meeting) with a contact",
			Parameters: schema(`{
				"type": "object",
				"properties": {
					"contactId": {"type": "string"},
					"type": {"type": "string", "enum": ["call", "email", "meeting", "other"]},
					"summary": {"type": "string"},
					"outcome": {"type": "string"},
					"sentiment": {"type": "string", "enum": ["positive", "neutral", "negative"]},
					"occurredAt": {"type": "string", "description": "ISO 8601 timestamp; defaults to now"}
				},
				"required": ["contactId", "type"]
			}`),
		},
		{
			Name:        "updateInteraction",
			Description: "Update an existing interaction",
			Parameters: schema(`{
				"type": "object",
				"properties": {
					"interactionId": {"type": "string"},
					"type": {"type": "string", "enum": ["call", "email", "meeting", "other"]},
					"summary": {"type": "string"},
					"outcome": {"type": "string"},
					"sentiment": {"type": "string", "enum": ["positive", "neutral", "negative"]},
					"occurredAt": {"type": "string", "description": "ISO 8601 timestamp"}
				},
				"required": ["interactionId"]
			}`),
		},
		{
			Name:        "getInteractions",
			Description: "Get interaction history for a contact",
			Parameters:  contactIDSchema,
		},
		{
			Name:        "addNote",
			Description: "Add a note to a contact, company, or interaction",
			Parameters: schema(`{
				"type": "object",
				"properties": {
					"content": {"type": "string"},
					"contactId": {"type": "string"},
					"companyId": {"type": "string"},
					"interactionId": {"type": "string"}
				},
				"required": ["content"]
			}`),
		},
		{
			Name:        "createNotification",
			Description: "Create a follow-up reminder or task",
			Parameters: schema(`{
				"type": "object",
				"properties": {
					"title": {"type": "string"},
					"type": {"type": "string", "enum": ["follow_up_email", "follow_up_call", "follow_up_meeting", "general"]},
					"contactId": {"type": "string"},
					"interactionId": {"type": "string"},
					"description": {"type": "string"},
					"dueDate": {"type": "string", "description": "ISO 8601 timestamp or date"}
				},
				"required": ["title", "type"]
			}`),
		},
		{
			Name:        "getNotifications",
			Description: "Get pending follow-up reminders and tasks",
			Parameters: schema(`{
				"type": "object",
				"properties": {
					"contactId": {"type": "string", "description": "Only notifications for this contact"}
				}
			}`),
		},
		{
			Name:        "completeNotification",
			Description: "Mark a notification/reminder as complete",
			Parameters: schema(`{
				"type": "object",
				"properties": {
					"notificationId": {"type": "string"}
				},
				"required": ["notificationId"]
			}`),
		},
	}
}

// dispatch executes one tool call and returns its JSON result. Tool
// failures are reported inside the result so the model can recover;
// only malformed dispatches error out.
func (t *toolset) dispatch(ctx context.Context, userID string, call driven.ToolCall) json.RawMessage {
	result, err := t.execute(ctx, userID, call)
	if err != nil {
		return mustJSON(map[string]any{"success": false, "error": err.Error()})
	}
	return mustJSON(result)
}

func (t *toolset) execute(ctx context.Context, userID string, call driven.ToolCall) (any, error) {
	switch call.Name {
	case "search":
		var args struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return t.search.HybridSearch(ctx, userID, args.Query)

	case "searchCompanies":
		var args struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		companies, err := t.search.FuzzySearchCompanies(ctx, userID, args.Query, 10)
		if err != nil {
			return nil, err
		}
		return map[string]any{"companies": companies}, nil

	case "listContacts":
		var args struct {
			CompanyID string `json:"companyId"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		page, err := t.contacts.List(ctx, userID, domain.ContactListOptions{
			CompanyID: args.CompanyID,
			Page:      domain.PageParams{Limit: domain.MaxPageLimit},
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"contacts": page.Data, "total": page.Total}, nil

	case "createContact":
		return t.createContact(ctx, userID, call.Arguments)

	case "updateContact":
		var args struct {
			ContactID string  `json:"contactId"`
			FirstName *string `json:"firstName"`
			LastName  *string `json:"lastName"`
			Email     *string `json:"email"`
			Phone     *string `json:"phone"`
			JobTitle  *string `json:"jobTitle"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		contact, err := t.contacts.Update(ctx, userID, args.ContactID, driving.UpdateContactInput{
			FirstName: args.FirstName,
			LastName:  args.LastName,
			Email:     args.Email,
			Phone:     args.Phone,
			JobTitle:  args.JobTitle,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "contact": contact}, nil

	case "getContactDetails":
		contactID, err := idArg(call.Arguments, "contactId")
		if err != nil {
			return nil, err
		}
		detail, err := t.contacts.Get(ctx, userID, contactID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "contact": detail}, nil

	case "deleteContact":
		contactID, err := idArg(call.Arguments, "contactId")
		if err != nil {
			return nil, err
		}
		detail, err := t.contacts.Get(ctx, userID, contactID)
		if err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("Are you sure you want to delete %s", detail.FirstName)
		if detail.LastName != "" {
			msg += " " + detail.LastName
		}
		if detail.Company != nil {
			msg += " from " + detail.Company.Name
		}
		msg += "? This will also delete all associated interactions, notes, and notifications."
		return map[string]any{
			"success":              true,
			"requiresConfirmation": true,
			"message":              msg,
			"contact":              detail.Contact,
		}, nil

	case "confirmDeleteContact":
		contactID, err := idArg(call.Arguments, "contactId")
		if err != nil {
			return nil, err
		}
		detail, err := t.contacts.Get(ctx, userID, contactID)
		if err != nil {
			return nil, err
		}
		if err := t.contacts.Delete(ctx, userID, contactID); err != nil {
			return nil, err
		}
		name := detail.FirstName
		if detail.LastName != "" {
			name += " " + detail.LastName
		}
		return map[string]any{"success": true, "message": "Deleted " + name}, nil

	case "listCompanies":
		page, err := t.companies.List(ctx, userID, domain.CompanyListOptions{
			Page: domain.PageParams{Limit: domain.MaxPageLimit},
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"companies": page.Data, "total": page.Total}, nil

	case "createCompany":
		var args struct {
			Name        string `json:"name"`
			Website     string `json:"website"`
			Industry    string `json:"industry"`
			Address     string `json:"address"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		company, err := t.companies.Create(ctx, userID, driving.CreateCompanyInput{
			Name:        args.Name,
			Website:     args.Website,
			Industry:    args.Industry,
			Address:     args.Address,
			Description: args.Description,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "company": company}, nil

	case "updateCompany":
		var args struct {
			CompanyID   string  `json:"companyId"`
			Name        *string `json:"name"`
			Website     *string `json:"website"`
			Industry    *string `json:"industry"`
			Address     *string `json:"address"`
			Description *string `json:"description"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		company, err := t.companies.Update(ctx, userID, args.CompanyID, driving.UpdateCompanyInput{
			Name:        args.Name,
			Website:     args.Website,
			Industry:    args.Industry,
			Address:     args.Address,
			Description: args.Description,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "company": company}, nil

	case "getCompanyDetails":
		companyID, err := idArg(call.Arguments, "companyId")
		if err != nil {
			return nil, err
		}
		company, err := t.companies.Get(ctx, userID, companyID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "company": company}, nil

	case "deleteCompany":
		companyID, err := idArg(call.Arguments, "companyId")
		if err != nil {
			return nil, err
		}
		company, err := t.companies.Get(ctx, userID, companyID)
		if err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("Are you sure you want to delete %s? Its %d contact(s) will be kept but detached from the company.",
			company.Name, len(company.Contacts))
		return map[string]any{
			"success":              true,
			"requiresConfirmation": true,
			"message":              msg,
			"company":              company.Company,
		}, nil

	case "confirmDeleteCompany":
		companyID, err := idArg(call.Arguments, "companyId")
		if err != nil {
			return nil, err
		}
		company, err := t.companies.Get(ctx, userID, companyID)
		if err != nil {
			return nil, err
		}
		if err := t.companies.Delete(ctx, userID, companyID); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "message": "Deleted " + company.Name}, nil

	case "addInteraction":
		var args struct {
			ContactID  string `json:"contactId"`
			Type       string `json:"type"`
			Summary    string `json:"summary"`
			Outcome    string `json:"outcome"`
			Sentiment  string `json:"sentiment"`
			OccurredAt string `json:"occurredAt"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		occurredAt, err := parseWhen(args.OccurredAt)
		if err != nil {
			return nil, err
		}
		interaction, err := t.interactions.Create(ctx, userID, driving.CreateInteractionInput{
			ContactID:  args.ContactID,
			Type:       domain.InteractionType(args.Type),
			Summary:    args.Summary,
			Outcome:    args.Outcome,
			Sentiment:  domain.Sentiment(args.Sentiment),
			OccurredAt: occurredAt,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "interaction": interaction}, nil

	case "updateInteraction":
		var args struct {
			InteractionID string  `json:"interactionId"`
			Type          *string `json:"type"`
			Summary       *string `json:"summary"`
			Outcome       *string `json:"outcome"`
			Sentiment     *string `json:"sentiment"`
			OccurredAt    string  `json:"occurredAt"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		occurredAt, err := parseWhen(args.OccurredAt)
		if err != nil {
			return nil, err
		}
		input := driving.UpdateInteractionInput{
			Summary:    args.Summary,
			Outcome:    args.Outcome,
			OccurredAt: occurredAt,
		}
		if args.Type != nil {
			typ := domain.InteractionType(*args.Type)
			input.Type = &typ
		}
		if args.Sentiment != nil {
			sent := domain.Sentiment(*args.Sentiment)
			input.Sentiment = &sent
		}
		interaction, err := t.interactions.Update(ctx, userID, args.InteractionID, input)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "interaction": interaction}, nil

	case "getInteractions":
		contactID, err := idArg(call.Arguments, "contactId")
		if err != nil {
			return nil, err
		}
		page, err := t.interactions.List(ctx, userID, contactID, domain.PageParams{Limit: domain.MaxPageLimit})
		if err != nil {
			return nil, err
		}
		return map[string]any{"interactions": page.Data, "total": page.Total}, nil

	case "addNote":
		var args struct {
			Content       string `json:"content"`
			ContactID     string `json:"contactId"`
			CompanyID     string `json:"companyId"`
			InteractionID string `json:"interactionId"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		note, err := t.notes.Create(ctx, userID, driving.CreateNoteInput{
			Content:       args.Content,
			ContactID:     args.ContactID,
			CompanyID:     args.CompanyID,
			InteractionID: args.InteractionID,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "note": note}, nil

	case "createNotification":
		var args struct {
			Title         string `json:"title"`
			Type          string `json:"type"`
			ContactID     string `json:"contactId"`
			InteractionID string `json:"interactionId"`
			Description   string `json:"description"`
			DueDate       string `json:"dueDate"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		dueDate, err := parseWhen(args.DueDate)
		if err != nil {
			return nil, err
		}
		notification, err := t.notifications.Create(ctx, userID, driving.CreateNotificationInput{
			ContactID:     args.ContactID,
			InteractionID: args.InteractionID,
			Type:          domain.NotificationType(args.Type),
			Title:         args.Title,
			Description:   args.Description,
			DueDate:       dueDate,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "notification": notification}, nil

	case "getNotifications":
		var args struct {
			ContactID string `json:"contactId"`
		}
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		page, err := t.notifications.List(ctx, userID, domain.NotificationPending, domain.PageParams{Limit: domain.MaxPageLimit})
		if err != nil {
			return nil, err
		}
		results := page.Data
		if args.ContactID != "" {
			filtered := results[:0]
			for _, n := range results {
				if n.ContactID == args.ContactID {
					filtered = append(filtered, n)
				}
			}
			results = filtered
		}
		return map[string]any{"notifications": results}, nil

	case "completeNotification":
		notificationID, err := idArg(call.Arguments, "notificationId")
		if err != nil {
			return nil, err
		}
		notification, err := t.notifications.Complete(ctx, userID, notificationID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "notification": notification}, nil
	}

	return nil, fmt.Errorf("%w: unknown tool %q", domain.ErrInvalidInput, call.Name)
}

// createContact resolves an optional companyName to a company, creating
// one when no exact name match exists, then creates the contact.
func (t *toolset) createContact(ctx context.Context, userID string, rawArgs json.RawMessage) (any, error) {
	var args struct {
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		JobTitle    string `json:"jobTitle"`
		CompanyName string `json:"companyName"`
	}
	if err := json.Unmarshal(rawArgs, &args); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var companyID string
	if args.CompanyName != "" {
		page, err := t.companies.List(ctx, userID, domain.CompanyListOptions{
			Query: args.CompanyName,
			Page:  domain.PageParams{Limit: domain.MaxPageLimit},
		})
		if err != nil {
			return nil, err
		}
		for _, c := range page.Data {
			if strings.EqualFold(c.Name, args.CompanyName) {
				companyID = c.ID
				break
			}
		}
		if companyID == "" {
			company, err := t.companies.Create(ctx, userID, driving.CreateCompanyInput{Name: args.CompanyName})
			if err != nil {
				return nil, err
			}
			companyID = company.ID
		}
	}

	contact, err := t.contacts.Create(ctx, userID, driving.CreateContactInput{
		FirstName: args.FirstName,
		LastName:  args.LastName,
		Email:     args.Email,
		Phone:     args.Phone,
		JobTitle:  args.JobTitle,
		CompanyID: companyID,
	})
	if err != nil {
		return nil, err
	}
	return map[string]any{"success": true, "contact": contact}, nil
}

// idArg extracts a single required string field from tool arguments.
func idArg(rawArgs json.RawMessage, key string) (string, error) {
	var args map[string]string
	if err := json.Unmarshal(rawArgs, &args); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	id := args[key]
	if id == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, key)
	}
	return id, nil
}

// parseWhen parses an optional ISO 8601 timestamp or bare date.
func parseWhen(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot parse time %q", domain.ErrInvalidInput, s)
}

func mustJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(map[string]any{"success": false, "error": err.Error()})
	}
	return data
}
