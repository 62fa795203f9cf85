package memory

import (
	"context"
	"sync"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// Ensure EmbeddingStore implements the interface.
var _ driven.EmbeddingStore = (*EmbeddingStore)(nil)

type embeddingKey struct {
	userID     string
	entityType domain.EntityType
	entityID   string
}

// EmbeddingStore is an in-memory implementation of driven.EmbeddingStore.
type EmbeddingStore struct {
	mu      sync.RWMutex
	records map[embeddingKey]domain.EmbeddingRecord
}

// NewEmbeddingStore creates a new in-memory embedding store.
func NewEmbeddingStore() *EmbeddingStore {
	return &EmbeddingStore{records: make(map[embeddingKey]domain.EmbeddingRecord)}
}

// Upsert stores the record, replacing any existing row for the same key.
func (s *EmbeddingStore) Upsert(_ context.Context, record *domain.EmbeddingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := embeddingKey{record.UserID, record.EntityType, record.EntityID}
	s.records[key] = *record
	return nil
}

// GetByEntity retrieves the record for one entity.
func (s *EmbeddingStore) GetByEntity(_ context.Context, userID string, entityType domain.EntityType, entityID string) (*domain.EmbeddingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[embeddingKey{userID, entityType, entityID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// ListByUser returns every record the user owns, optionally narrowed to
// one entity type.
func (s *EmbeddingStore) ListByUser(_ context.Context, userID string, entityType domain.EntityType) ([]domain.EmbeddingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.EmbeddingRecord{}
	for key, record := range s.records {
		if key.userID != userID {
			continue
		}
		if entityType != "" && key.entityType != entityType {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

// DeleteByEntity removes the record for one entity, if any.
func (s *EmbeddingStore) DeleteByEntity(_ context.Context, userID string, entityType domain.EntityType, entityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, embeddingKey{userID, entityType, entityID})
	return nil
}
