package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

func TestServer_FuzzySearch(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)
	createContactViaAPI(t, f, map[string]any{"firstName": "Alex", "lastName": "Rivera"})
	createContactViaAPI(t, f, map[string]any{"firstName": "Priya", "lastName": "Patel"})

	rec := f.do(t, http.MethodGet, "/api/search/fuzzy?q=rivera", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []domain.ContactWithCompany `json:"data"`
	}
	decodeJSON(t, rec, &body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Alex", body.Data[0].FirstName)
}

func TestServer_FuzzySearch_RequiresQuery(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodGet, "/api/search/fuzzy", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_SearchCompanies(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)
	rec := f.do(t, http.MethodPost, "/api/companies", map[string]any{"name": "Acme Corp"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/search/companies?q=acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []domain.Company `json:"data"`
	}
	decodeJSON(t, rec, &body)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Acme Corp", body.Data[0].Name)
}

func TestServer_SemanticSearch_Unavailable(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodGet, "/api/search/semantic?q=manufacturing+leads", nil)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServer_SemanticSearch_UnknownEntityType(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodGet, "/api/search/semantic?q=leads&entityType=widget", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_HybridSearch_DegradesWithoutEmbedder(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)
	createContactViaAPI(t, f, map[string]any{"firstName": "Alex", "lastName": "Rivera"})

	rec := f.do(t, http.MethodGet, "/api/search?q=rivera", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.HybridSearchResult
	decodeJSON(t, rec, &result)
	assert.Len(t, result.FuzzyMatches, 1)
	assert.Empty(t, result.SemanticMatches)
}

func TestServer_HybridSearch_RequiresQuery(t *testing.T) {
	f := newAPIFixture(t, Config{}, nil)

	rec := f.do(t, http.MethodGet, "/api/search", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
