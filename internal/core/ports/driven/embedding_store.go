package driven

import (
	"context"

	"github.com/coastline-labs/anchor/internal/core/domain"
)

// EmbeddingStore persists indexed embedding records.
type EmbeddingStore interface {
	// Upsert stores the record, replacing any existing row for the same
	// (user, entity type, entity ID) key in a single statement.
	Upsert(ctx context.Context, record *domain.EmbeddingRecord) error

	// GetByEntity retrieves the record for one entity, or nil with
	// ErrNotFound when the entity has not been indexed.
	GetByEntity(ctx context.Context, userID string, entityType domain.EntityType, entityID string) (*domain.EmbeddingRecord, error)

	// ListByUser returns every record the user owns, optionally
	// narrowed to one entity type.
	ListByUser(ctx context.Context, userID string, entityType domain.EntityType) ([]domain.EmbeddingRecord, error)

	// DeleteByEntity removes the record for one entity. Deleting an
	// unindexed entity is not an error.
	DeleteByEntity(ctx context.Context, userID string, entityType domain.EntityType, entityID string) error
}
