package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

func TestHandleGetCompany(t *testing.T) {
	ports := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	created, err := ports.Companies.Create(context.Background(), ports.UserID, driving.CreateCompanyInput{
		Name:     "Acme Corp",
		Industry: "Manufacturing",
	})
	require.NoError(t, err)

	_, company, err := server.handleGetCompany(context.Background(), nil, GetCompanyInput{CompanyID: created.ID})

	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "Acme Corp", company.Name)
	assert.Equal(t, "Manufacturing", company.Industry)
}

func TestHandleGetCompany_OtherUser(t *testing.T) {
	ports := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	created, err := ports.Companies.Create(context.Background(), "someone_else", driving.CreateCompanyInput{
		Name: "Hidden Inc",
	})
	require.NoError(t, err)

	_, company, err := server.handleGetCompany(context.Background(), nil, GetCompanyInput{CompanyID: created.ID})

	require.Error(t, err)
	assert.Nil(t, company)
}

func TestHandleCreateContact(t *testing.T) {
	ports := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, contact, err := server.handleCreateContact(context.Background(), nil, CreateContactInput{
		FirstName: "Alex",
		LastName:  "Rivera",
		Email:     "alex@acme.io",
	})

	require.NoError(t, err)
	require.NotNil(t, contact)
	assert.Equal(t, "Alex", contact.FirstName)
	assert.Equal(t, ports.UserID, contact.UserID)
}
