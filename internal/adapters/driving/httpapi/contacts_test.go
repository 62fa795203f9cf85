package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

func createContactViaAPI(t *testing.T, f *apiFixture, body map[string]any) domain.Contact {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/contacts", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var contact domain.Contact
	decodeJSON(t, rec, &contact)
	return contact
}

func TestServer_CreateContact(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	contact := createContactViaAPI(t, f, map[string]any{
		"firstName": "Alex",
		"lastName":  "Rivera",
		"email":     "alex@acme.io",
	})

	assert.NotEmpty(t, contact.ID)
	assert.Equal(t, testUserID, contact.UserID)
	assert.Equal(t, "Alex", contact.FirstName)
	assert.Equal(t, "alex@acme.io", contact.Email)
}

func TestServer_CreateContact_MissingFirstName(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodPost, "/api/contacts", map[string]any{
		"lastName": "Rivera",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "FirstName")
}

func TestServer_CreateContact_InvalidEmail(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodPost, "/api/contacts", map[string]any{
		"firstName": "Alex",
		"email":     "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_CreateContact_MalformedJSON(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodPost, "/api/contacts", "not an object")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GetContact(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)
	contact := createContactViaAPI(t, f, map[string]any{"firstName": "Alex"})

	rec := f.do(t, http.MethodGet, "/api/contacts/"+contact.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail domain.ContactDetail
	decodeJSON(t, rec, &detail)
	assert.Equal(t, contact.ID, detail.ID)
	assert.NotNil(t, detail.Interactions)
	assert.NotNil(t, detail.Notes)
}

func TestServer_GetContact_NotFound(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodGet, "/api/contacts/missing", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListContacts(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)
	createContactViaAPI(t, f, map[string]any{"firstName": "Alex"})
	createContactViaAPI(t, f, map[string]any{"firstName": "Bonnie"})

	rec := f.do(t, http.MethodGet, "/api/contacts?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.Page[domain.ContactWithCompany]
	decodeJSON(t, rec, &page)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, int64(2), page.Total)
	assert.True(t, page.HasMore)
}

func TestServer_UpdateContact(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)
	contact := createContactViaAPI(t, f, map[string]any{"firstName": "Alex"})

	rec := f.do(t, http.MethodPatch, "/api/contacts/"+contact.ID, map[string]any{
		"jobTitle": "CTO",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Contact
	decodeJSON(t, rec, &updated)
	assert.Equal(t, "CTO", updated.JobTitle)
	assert.Equal(t, "Alex", updated.FirstName)
}

func TestServer_UpdateContact_BlankFirstName(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)
	contact := createContactViaAPI(t, f, map[string]any{"firstName": "Alex"})

	rec := f.do(t, http.MethodPatch, "/api/contacts/"+contact.ID, map[string]any{
		"firstName": "   ",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_DeleteContact(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)
	contact := createContactViaAPI(t, f, map[string]any{"firstName": "Alex"})

	rec := f.do(t, http.MethodDelete, "/api/contacts/"+contact.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/contacts/"+contact.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CompanyRoundTrip(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodPost, "/api/companies", map[string]any{
		"name":     "Acme Corp",
		"industry": "Manufacturing",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var company domain.Company
	decodeJSON(t, rec, &company)
	assert.Equal(t, "Acme Corp", company.Name)

	contact := createContactViaAPI(t, f, map[string]any{
		"firstName": "Alex",
		"companyId": company.ID,
	})
	assert.Equal(t, company.ID, contact.CompanyID)

	rec = f.do(t, http.MethodDelete, "/api/companies/"+company.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/contacts/"+contact.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail domain.ContactDetail
	decodeJSON(t, rec, &detail)
	assert.Empty(t, detail.CompanyID)
}

func TestServer_NotificationComplete(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodPost, "/api/notifications", map[string]any{
		"title": "Follow up with Alex",
		"type":  "general",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var notification domain.Notification
	decodeJSON(t, rec, &notification)
	require.Nil(t, notification.CompletedAt)

	rec = f.do(t, http.MethodPost, "/api/notifications/"+notification.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeJSON(t, rec, &notification)
	assert.NotNil(t, notification.CompletedAt)
}
