package common

import (
	"net/http"
	"strconv"
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// DefaultPaginationParams returns default pagination parameters
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{
		Page: 1,
		Size: 20,
	}
}

// ExtractPaginationParams extracts pagination parameters from request.
// Values that fail to parse fall back to the defaults; range validation
// (page/size >= 1) is the caller's responsibility so that explicit
// out-of-range input can still be rejected as invalid.
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := DefaultPaginationParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			params.Page = p
		}
	}

	if size := r.URL.Query().Get("size"); size != "" {
		if s, err := strconv.Atoi(size); err == nil {
			params.Size = s
		}
	}

	return params
}

// Offset calculates the offset for paging through a result set
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// CalculateTotalPages calculates total number of pages
func CalculateTotalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	pages := total / size
	if total%size > 0 {
		pages++
	}
	return pages
}

// PageSlice returns the window of a slice corresponding to the given page.
// Out-of-range pages yield an empty (non-nil) slice.
func PageSlice[T any](items []T, page, size int) []T {
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
