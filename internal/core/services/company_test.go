package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

func TestCompanyService_Create(t *testing.T) {
	stores := newCRMStores()
	service := NewCompanyService(stores.companies)

	company, err := service.Create(context.Background(), "u1", driving.CreateCompanyInput{
		Name:     "  Acme Corp ",
		Industry: "Aerospace",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, company.ID)
	assert.Equal(t, "Acme Corp", company.Name)
	assert.Equal(t, "Aerospace", company.Industry)
}

func TestCompanyService_Create_RequiresName(t *testing.T) {
	stores := newCRMStores()
	service := NewCompanyService(stores.companies)

	_, err := service.Create(context.Background(), "u1", driving.CreateCompanyInput{Name: "  "})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyService_Get_WithContacts(t *testing.T) {
	stores := newCRMStores()
	service := NewCompanyService(stores.companies)
	ctx := context.Background()

	acme := seedCompany(t, stores.companies, domain.Company{ID: "co-1", UserID: "u1", Name: "Acme Corp"})
	seedContact(t, stores.contacts, domain.Contact{ID: "c1", UserID: "u1", FirstName: "Alex", CompanyID: acme.ID})
	seedContact(t, stores.contacts, domain.Contact{ID: "c2", UserID: "u1", FirstName: "Priya"})

	company, err := service.Get(ctx, "u1", "co-1")

	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", company.Name)
	require.Len(t, company.Contacts, 1)
	assert.Equal(t, "c1", company.Contacts[0].ID)
}

func TestCompanyService_Update_Partial(t *testing.T) {
	stores := newCRMStores()
	service := NewCompanyService(stores.companies)

	seedCompany(t, stores.companies, domain.Company{
		ID: "co-1", UserID: "u1", Name: "Acme Corp", Industry: "Aerospace",
	})

	website := "https://acme.example"
	updated, err := service.Update(context.Background(), "u1", "co-1", driving.UpdateCompanyInput{
		Website: &website,
	})

	require.NoError(t, err)
	assert.Equal(t, "https://acme.example", updated.Website)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.Equal(t, "Aerospace", updated.Industry)
}

func TestCompanyService_Update_CannotBlankName(t *testing.T) {
	stores := newCRMStores()
	service := NewCompanyService(stores.companies)

	seedCompany(t, stores.companies, domain.Company{ID: "co-1", UserID: "u1", Name: "Acme Corp"})

	blank := ""
	_, err := service.Update(context.Background(), "u1", "co-1", driving.UpdateCompanyInput{
		Name: &blank,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompanyService_Delete_DetachesContacts(t *testing.T) {
	stores := newCRMStores()
	service := NewCompanyService(stores.companies)
	ctx := context.Background()

	acme := seedCompany(t, stores.companies, domain.Company{ID: "co-1", UserID: "u1", Name: "Acme Corp"})
	seedContact(t, stores.contacts, domain.Contact{ID: "c1", UserID: "u1", FirstName: "Alex", CompanyID: acme.ID})

	require.NoError(t, service.Delete(ctx, "u1", "co-1"))

	_, err := service.Get(ctx, "u1", "co-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The contact survives, detached from the deleted company.
	contact, err := stores.contacts.Get(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Empty(t, contact.CompanyID)
}

func TestCompanyService_List_DefaultsToNameAscending(t *testing.T) {
	stores := newCRMStores()
	service := NewCompanyService(stores.companies)

	seedCompany(t, stores.companies, domain.Company{ID: "co-1", UserID: "u1", Name: "Globex"})
	seedCompany(t, stores.companies, domain.Company{ID: "co-2", UserID: "u1", Name: "Acme Corp"})

	page, err := service.List(context.Background(), "u1", domain.CompanyListOptions{})

	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Acme Corp", page.Data[0].Name)
	assert.Equal(t, "Globex", page.Data[1].Name)
}
