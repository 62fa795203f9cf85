package driving

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// SearchService answers contact search queries.
type SearchService interface {
	// FuzzySearch scores the user's contacts against the query with
	// weighted field matching and returns them best first.
	FuzzySearch(ctx context.Context, userID, query string, limit int) ([]domain.SearchableContact, error)

	// FuzzySearchCompanies scores the user's companies against the
	// query over name, industry and description, equally weighted.
	FuzzySearchCompanies(ctx context.Context, userID, query string, limit int) ([]domain.Company, error)

	// SemanticSearch embeds the query and ranks indexed entities by
	// cosine similarity. entityTypes is optional and narrows the index
	// to the listed types.
	SemanticSearch(ctx context.Context, userID, query string, entityTypes []domain.EntityType, limit int) ([]domain.SemanticHit, error)

	// HybridSearch runs the fuzzy and semantic paths concurrently and
	// merges them into best/fuzzy-only/semantic-only buckets. A single
	// failed path degrades to empty results; the search fails only when
	// both do.
	HybridSearch(ctx context.Context, userID, query string) (*domain.HybridSearchResult, error)
}

// IndexerService maintains the embedding index that semantic search
// reads.
type IndexerService interface {
	// IndexContact rebuilds the index entry for one contact from its
	// current fields, company name and note contents.
	IndexContact(ctx context.Context, userID, contactID string) error

	// RemoveEntity drops an entity's index entry. Removing an unindexed
	// entity is not an error.
	RemoveEntity(ctx context.Context, userID string, entityType domain.EntityType, entityID string) error
}
