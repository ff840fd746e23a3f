package shared

// Filter narrows a repository listing. A zero PageSize returns every match.
// Filters holds repository-specific keys (see catalog.Filter* and trade.Filter*).
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// Paged reports whether the listing is limited to one page
func (f Filter) Paged() bool { return f.PageSize > 0 }

// Offset is the number of rows skipped before the current page
func (f Filter) Offset() int {
	if !f.Paged() || f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Paginated is one page of a listing plus the size of the whole listing
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated wraps items; TotalPages rounds up and is 0 for an unpaged result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	p := Paginated[T]{Items: items, Total: total, Page: page, PageSize: pageSize}
	if pageSize > 0 {
		p.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return p
}
