package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coastline-labs/anchor/internal/core/domain"
	"github.com/coastline-labs/anchor/internal/core/ports/driven"
)

// embeddingStore implements driven.EmbeddingStore.
type embeddingStore struct {
	store *Store
}

var _ driven.EmbeddingStore = (*embeddingStore)(nil)

// Upsert stores the record, replacing any existing row for the same
// (user, entity type, entity ID) key in a single statement. The unique
// index makes concurrent re-indexing of the same key safe.
func (s *embeddingStore) Upsert(ctx context.Context, record *domain.EmbeddingRecord) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO embeddings (id, user_id, entity_type, entity_id, source_text, vector, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, entity_type, entity_id) DO UPDATE SET
			source_text = excluded.source_text,
			vector = excluded.vector,
			created_at = excluded.created_at
	`, record.ID, record.UserID, record.EntityType, record.EntityID,
		record.SourceText, vectorToBytes(record.Vector), record.CreatedAt)

	if err != nil {
		return fmt.Errorf("upserting embedding: %w", err)
	}
	return nil
}

// GetByEntity retrieves the record for one entity.
func (s *embeddingStore) GetByEntity(ctx context.Context, userID string, entityType domain.EntityType, entityID string) (*domain.EmbeddingRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, user_id, entity_type, entity_id, source_text, vector, created_at
		FROM embeddings
		WHERE user_id = ? AND entity_type = ? AND entity_id = ?
	`, userID, entityType, entityID)

	record, err := scanEmbedding(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning embedding: %w", err)
	}
	return record, nil
}

// ListByUser returns every record the user owns, optionally narrowed to
// one entity type.
func (s *embeddingStore) ListByUser(ctx context.Context, userID string, entityType domain.EntityType) ([]domain.EmbeddingRecord, error) {
	query := `
		SELECT id, user_id, entity_type, entity_id, source_text, vector, created_at
		FROM embeddings WHERE user_id = ?`
	args := []any{userID}
	if entityType != "" {
		query += " AND entity_type = ?"
		args = append(args, entityType)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	var records []domain.EmbeddingRecord
	for rows.Next() {
		record, err := scanEmbedding(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}
	return records, nil
}

// DeleteByEntity removes the record for one entity. Removing an
// unindexed entity is not an error.
func (s *embeddingStore) DeleteByEntity(ctx context.Context, userID string, entityType domain.EntityType, entityID string) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM embeddings WHERE user_id = ? AND entity_type = ? AND entity_id = ?
	`, userID, entityType, entityID)
	if err != nil {
		return fmt.Errorf("deleting embedding: %w", err)
	}
	return nil
}

// scanEmbedding reads one embedding row, decoding the vector blob.
func scanEmbedding(row interface{ Scan(...any) error }) (*domain.EmbeddingRecord, error) {
	var record domain.EmbeddingRecord
	var blob []byte
	if err := row.Scan(&record.ID, &record.UserID, &record.EntityType,
		&record.EntityID, &record.SourceText, &blob, &record.CreatedAt); err != nil {
		return nil, err
	}
	record.Vector = bytesToVector(blob)
	return &record, nil
}
