package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastline-labs/anchor/internal/adapters/driven/storage/memory"
	"github.com/coastline-labs/anchor/internal/core/services"
)

func testPorts() *Ports {
	contacts := memory.NewContactStore()
	companies := memory.NewCompanyStore()
	embeddings := memory.NewEmbeddingStore()
	indexer := services.NewIndexerService(contacts, memory.NewNoteStore(), embeddings, nil)

	return &Ports{
		UserID:    "user_mcp",
		Search:    services.NewSearchService(contacts, companies, embeddings, nil),
		Contacts:  services.NewContactService(contacts, companies, indexer),
		Companies: services.NewCompanyService(companies),
	}
}

func TestPorts_Validate(t *testing.T) {
	ports := testPorts()
	assert.NoError(t, ports.Validate())

	missing := *ports
	missing.UserID = ""
	assert.ErrorIs(t, missing.Validate(), ErrMissingUserID)

	missing = *ports
	missing.Search = nil
	assert.ErrorIs(t, missing.Validate(), ErrMissingSearchService)

	missing = *ports
	missing.Contacts = nil
	assert.ErrorIs(t, missing.Validate(), ErrMissingContactService)

	// Companies is optional.
	missing = *ports
	missing.Companies = nil
	assert.NoError(t, missing.Validate())
}

func TestNewServer(t *testing.T) {
	server, err := NewServer(testPorts())
	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestNewServer_InvalidPorts(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingUserID)
}
