// Package pagination implements the offset-based page/limit scheme the
// public API exposes: responses carry the page of items plus total and
// total-pages so clients can render pagers without a second query.
package pagination

type Meta struct {
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// NewMeta computes paging metadata for a result set of size total.
func NewMeta(total, page, limit int) Meta {
	if limit <= 0 {
		limit = 1
	}
	if page <= 0 {
		page = 1
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return Meta{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
	}
}
