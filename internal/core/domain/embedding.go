package domain

import "time"

// EntityType is the closed set of indexable business objects.
type EntityType string

// Indexable entity types.
const (
	EntityContact     EntityType = "contact"
	EntityCompany     EntityType = "company"
	EntityInteraction EntityType = "interaction"
	EntityNote        EntityType = "note"
)

// Valid reports whether t is a known entity type.
func (t EntityType) Valid() bool {
	switch t {
	case EntityContact, EntityCompany, EntityInteraction, EntityNote:
		return true
	}
	return false
}

// EmbeddingRecord is one indexed snapshot of an entity's text content.
//
// At most one record exists per (UserID, EntityType, EntityID) at any
// time; re-indexing replaces the row rather than accumulating history.
// The store enforces this with a uniqueness constraint and a conditional
// upsert, so concurrent re-indexing of the same key cannot leave zero or
// duplicate rows.
type EmbeddingRecord struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	SourceText string     `json:"sourceText"`
	Vector     []float32  `json:"vector"`
	CreatedAt  time.Time  `json:"createdAt"`
}
