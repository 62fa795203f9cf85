package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
	"github.com/coastline-labs/anchor/internal/core/ports/driving"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Caps for the exclusive buckets of a hybrid search. Corroborated
// matches are never capped.
const (
	hybridFuzzyOnlyCap    = 5
	hybridSemanticOnlyCap = 5
)

// defaultSemanticLimit bounds semantic results when the caller passes
// no limit.
const defaultSemanticLimit = 10

// Weights for fuzzy contact matching. Names dominate, email is a
// strong hint, company membership helps, job titles barely count.
const (
	weightFirstName = 2.0
	weightLastName  = 2.0
	weightEmail     = 1.5
	weightCompany   = 1.0
	weightJobTitle  = 0.5
)

// SearchService answers contact and company search queries.
type SearchService struct {
	contacts   driven.ContactStore
	companies  driven.CompanyStore
	embeddings driven.EmbeddingStore
	embedder   driven.EmbeddingService

	fuzzyThreshold float64
}

// NewSearchService creates a new search service. embedder may be nil,
// in which case semantic search reports the embedding provider as
// unavailable and hybrid search degrades to fuzzy only.
func NewSearchService(
	contacts driven.ContactStore,
	companies driven.CompanyStore,
	embeddings driven.EmbeddingStore,
	embedder driven.EmbeddingService,
) *SearchService {
	return &SearchService{
		contacts:       contacts,
		companies:      companies,
		embeddings:     embeddings,
		embedder:       embedder,
		fuzzyThreshold: defaultFuzzyThreshold,
	}
}

// SetFuzzyThreshold overrides the inclusion cutoff for fuzzy matching.
// Values at or below zero restore the default.
func (s *SearchService) SetFuzzyThreshold(threshold float64) {
	s.fuzzyThreshold = threshold
}

// FuzzySearch scores the user's contacts against the query with
// weighted field matching and returns them best first.
func (s *SearchService) FuzzySearch(ctx context.Context, userID, query string, limit int) ([]domain.SearchableContact, error) {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []domain.SearchableContact{}, nil
	}

	contacts, err := s.contacts.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading contacts: %w", err)
	}

	searchable := make([]domain.SearchableContact, len(contacts))
	for i, c := range contacts {
		searchable[i] = toSearchable(c)
	}

	ranked := rankMatches(len(searchable), func(i int) []fuzzyField {
		c := searchable[i]
		return []fuzzyField{
			{value: c.FirstName, weight: weightFirstName},
			{value: c.LastName, weight: weightLastName},
			{value: c.Email, weight: weightEmail},
			{value: c.CompanyName, weight: weightCompany},
			{value: c.JobTitle, weight: weightJobTitle},
		}
	}, tokens, s.fuzzyThreshold)

	results := make([]domain.SearchableContact, 0, len(ranked))
	for _, idx := range ranked {
		results = append(results, searchable[idx])
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// FuzzySearchCompanies scores the user's companies against the query
// over name, industry and description, equally weighted.
func (s *SearchService) FuzzySearchCompanies(ctx context.Context, userID, query string, limit int) ([]domain.Company, error) {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []domain.Company{}, nil
	}

	opts := domain.CompanyListOptions{Page: domain.PageParams{Limit: domain.MaxPageLimit}}
	all := make([]domain.Company, 0)
	for {
		page, _, err := s.companies.List(ctx, userID, opts)
		if err != nil {
			return nil, fmt.Errorf("loading companies: %w", err)
		}
		for _, c := range page {
			all = append(all, c.Company)
		}
		if len(page) < opts.Page.Limit {
			break
		}
		opts.Page.Offset += opts.Page.Limit
	}

	ranked := rankMatches(len(all), func(i int) []fuzzyField {
		c := all[i]
		return []fuzzyField{
			{value: c.Name, weight: 1},
			{value: c.Industry, weight: 1},
			{value: c.Description, weight: 1},
		}
	}, tokens, s.fuzzyThreshold)

	results := make([]domain.Company, 0, len(ranked))
	for _, idx := range ranked {
		results = append(results, all[idx])
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// SemanticSearch embeds the query and ranks indexed entities by cosine
// similarity against their stored vectors.
func (s *SearchService) SemanticSearch(ctx context.Context, userID, query string, entityTypes []domain.EntityType, limit int) ([]domain.SemanticHit, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if strings.TrimSpace(query) == "" {
		return []domain.SemanticHit{}, nil
	}
	for _, entityType := range entityTypes {
		if !entityType.Valid() {
			return nil, fmt.Errorf("%w: unknown entity type %q", domain.ErrInvalidInput, entityType)
		}
	}
	if limit <= 0 {
		limit = defaultSemanticLimit
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	// A single type filters in the store; multiple types load the full
	// index and filter in memory.
	var storeType domain.EntityType
	if len(entityTypes) == 1 {
		storeType = entityTypes[0]
	}
	records, err := s.embeddings.ListByUser(ctx, userID, storeType)
	if err != nil {
		return nil, fmt.Errorf("loading embeddings: %w", err)
	}

	var wanted map[domain.EntityType]bool
	if len(entityTypes) > 1 {
		wanted = make(map[domain.EntityType]bool, len(entityTypes))
		for _, entityType := range entityTypes {
			wanted[entityType] = true
		}
	}

	hits := make([]domain.SemanticHit, 0, len(records))
	for _, rec := range records {
		if wanted != nil && !wanted[rec.EntityType] {
			continue
		}
		score, err := cosineSimilarity(queryVec, rec.Vector)
		if err != nil {
			// A stale record from a previous embedding model has the
			// wrong dimensionality; skip it rather than fail the query.
			slog.Warn("skipping embedding record with mismatched dimensions",
				"entity_type", rec.EntityType, "entity_id", rec.EntityID, "error", err)
			continue
		}
		hits = append(hits, domain.SemanticHit{
			EntityType: rec.EntityType,
			EntityID:   rec.EntityID,
			Score:      score,
			SourceText: rec.SourceText,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// HybridSearch runs the fuzzy and semantic paths concurrently and
// merges them into three exclusive buckets: contacts found by both
// paths lead, then fuzzy-only and semantic-only hits, each capped.
// One failed path degrades to empty results; the search fails only
// when both do.
func (s *SearchService) HybridSearch(ctx context.Context, userID, query string) (*domain.HybridSearchResult, error) {
	var (
		fuzzyResults []domain.SearchableContact
		fuzzyErr     error
		semHits      []domain.SemanticHit
		semErr       error
	)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		fuzzyResults, fuzzyErr = s.FuzzySearch(ctx, userID, query, 0)
	}()

	go func() {
		defer wg.Done()
		semHits, semErr = s.SemanticSearch(ctx, userID, query, []domain.EntityType{domain.EntityContact}, defaultSemanticLimit)
	}()

	wg.Wait()

	if fuzzyErr != nil && semErr != nil {
		return nil, fmt.Errorf("hybrid search: %w", errors.Join(fuzzyErr, semErr))
	}
	if fuzzyErr != nil {
		slog.Warn("hybrid search: fuzzy path failed, using semantic only", "error", fuzzyErr)
		fuzzyResults = nil
	}
	if semErr != nil {
		if !errors.Is(semErr, domain.ErrEmbeddingUnavailable) {
			slog.Warn("hybrid search: semantic path failed, using fuzzy only", "error", semErr)
		}
		semHits = nil
	}

	semIDs := make(map[string]bool, len(semHits))
	for _, hit := range semHits {
		semIDs[hit.EntityID] = true
	}
	fuzzyIDs := make(map[string]bool, len(fuzzyResults))
	for _, c := range fuzzyResults {
		fuzzyIDs[c.ID] = true
	}

	result := &domain.HybridSearchResult{
		BestMatches:     []domain.SearchableContact{},
		FuzzyMatches:    []domain.SearchableContact{},
		SemanticMatches: []domain.ContactWithCompany{},
	}

	for _, c := range fuzzyResults {
		if semIDs[c.ID] {
			result.BestMatches = append(result.BestMatches, c)
		} else if len(result.FuzzyMatches) < hybridFuzzyOnlyCap {
			result.FuzzyMatches = append(result.FuzzyMatches, c)
		}
	}

	// The cap applies to semantic-only candidates before hydration, so
	// a hit whose contact is gone shrinks the bucket rather than
	// letting a lower-ranked candidate in.
	semanticOnly := make([]domain.SemanticHit, 0, hybridSemanticOnlyCap)
	for _, hit := range semHits {
		if fuzzyIDs[hit.EntityID] {
			continue
		}
		semanticOnly = append(semanticOnly, hit)
		if len(semanticOnly) == hybridSemanticOnlyCap {
			break
		}
	}

	for _, hit := range semanticOnly {
		contact, err := s.contacts.GetWithCompany(ctx, userID, hit.EntityID)
		if err != nil {
			// The index can briefly outlive a deleted contact.
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("hydrating semantic match %s: %w", hit.EntityID, err)
		}
		result.SemanticMatches = append(result.SemanticMatches, *contact)
	}

	return result, nil
}

// toSearchable projects a hydrated contact onto the fields fuzzy search
// scores.
func toSearchable(c domain.ContactWithCompany) domain.SearchableContact {
	sc := domain.SearchableContact{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		JobTitle:  c.JobTitle,
	}
	if c.Company != nil {
		sc.CompanyName = c.Company.Name
	}
	return sc
}
