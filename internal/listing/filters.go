package listing

// Sort keys accepted by Search.
type SortKey string

const (
	SortByUpdatedAt SortKey = "updated_at"
	SortByPrice     SortKey = "price"
)

// Sort directions accepted by Search.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	// DefaultLimit is the page size used when the caller doesn't ask for one.
	DefaultLimit = 20
	// MaxLimit is the page size cap enforced regardless of the request.
	MaxLimit = 50
)

// SearchFilters narrows, orders, and paginates a catalog search. Nil
// pointer fields impose no constraint.
type SearchFilters struct {
	Query     string
	MinPrice  *int64
	MaxPrice  *int64
	BedsMin   *int
	BathsMin  *int
	Page      int
	Limit     int
	SortBy    SortKey
	SortOrder SortOrder
}

// normalized returns a copy with defaults applied and documented clamps
// enforced: page floored to 1, limit defaulted and capped at MaxLimit,
// unknown sort keys and directions replaced with updated_at desc.
func (f SearchFilters) normalized() SearchFilters {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.SortBy != SortByPrice {
		f.SortBy = SortByUpdatedAt
	}
	if f.SortOrder != SortAsc {
		f.SortOrder = SortDesc
	}
	return f
}

// offset computes the zero-indexed row offset for the requested page.
func (f SearchFilters) offset() int {
	return (f.Page - 1) * f.Limit
}
