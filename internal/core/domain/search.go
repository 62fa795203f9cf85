package domain

// SearchableContact is the lightweight projection fuzzy search scores
// against. It is rebuilt from the store on every call and never
// persisted.
type SearchableContact struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	JobTitle    string `json:"jobTitle,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

// SemanticHit is one semantic search result: the entity reference, its
// cosine similarity against the query embedding, and the text that was
// embedded.
type SemanticHit struct {
	EntityType EntityType `json:"entityType"`
	EntityID   string     `json:"entityId"`
	Score      float64    `json:"score"`
	SourceText string     `json:"sourceText"`
}

// HybridSearchResult holds the three disjoint buckets of a hybrid
// contact search. A contact appears in exactly one bucket:
//
//   - BestMatches: returned by both the fuzzy and semantic paths. The
//     corroboration is treated as the strongest signal, so these lead.
//   - FuzzyMatches: fuzzy-only hits, capped at 5.
//   - SemanticMatches: semantic-only hits, capped at 5, re-fetched as
//     full contacts. Hits whose contact has since been deleted are
//     dropped rather than failing the search.
type HybridSearchResult struct {
	BestMatches     []SearchableContact  `json:"bestMatches"`
	FuzzyMatches    []SearchableContact  `json:"fuzzyMatches"`
	SemanticMatches []ContactWithCompany `json:"semanticMatches"`
}
