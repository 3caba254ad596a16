package sessions

import "github.com/strrl/claude-explorer/pkg/models"

// Listing parameter defaults and ceiling, shared by every paginated
// operation.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ClampLimit normalizes a requested page size into [1, MaxLimit],
// substituting the default for zero or negative values.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Paginate slices one page out of a fully materialized listing and
// reports the pre-pagination total. Offsets beyond the end yield an
// empty page, never an error.
func Paginate[T any](items []T, limit, offset int) models.Paginated[T] {
	if offset < 0 {
		offset = 0
	}
	limit = ClampLimit(limit)

	total := len(items)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	page := make([]T, end-start)
	copy(page, items[start:end])

	return models.Paginated[T]{
		Data: page,
		Meta: models.PaginationMeta{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+limit < total,
		},
	}
}
