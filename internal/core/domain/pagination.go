package domain

// Pagination bounds for list queries.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 200
)

// PageParams is an offset/limit window over a list query.
type PageParams struct {
	Offset int
	Limit  int
}

// Clamp normalises p into valid bounds: non-negative offset, limit in
// [1, MaxPageLimit], defaulting to DefaultPageLimit when unset.
func (p PageParams) Clamp() PageParams {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Page is one page of results plus enough bookkeeping for a client to
// continue paging.
type Page[T any] struct {
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	Offset  int   `json:"offset"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"hasMore"`
}

// NewPage assembles a Page, computing HasMore from the window position.
func NewPage[T any](data []T, total int64, params PageParams) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:    data,
		Total:   total,
		Offset:  params.Offset,
		Limit:   params.Limit,
		HasMore: int64(params.Offset+len(data)) < total,
	}
}
