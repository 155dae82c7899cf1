package domain

// Page is a bounded, zero-based slice of a filtered result set.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalPages int   `json:"totalPages"`
	TotalCount int64 `json:"totalCount"`
	PageIndex  int   `json:"pageIndex"`
	PageSize   int   `json:"pageSize"`
}

// IsLast reports whether no page follows this one.
func (p Page[T]) IsLast() bool {
	return p.PageIndex+1 >= p.TotalPages
}
