package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPaginationParams(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantPage int
		wantSize int
	}{
		{"defaults when absent", "/memes", 1, 20},
		{"explicit values", "/memes?page=3&size=15", 3, 15},
		{"non-numeric falls back", "/memes?page=abc&size=xyz", 1, 20},
		{"out of range passes through for the caller to reject", "/memes?page=0&size=-5", 0, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			params := ExtractPaginationParams(r)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantSize, params.Size)
		})
	}
}

func TestPaginationParams_Offset(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, Size: 20}.Offset())
	assert.Equal(t, 40, PaginationParams{Page: 3, Size: 20}.Offset())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}

func TestPageSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2, 3}, PageSlice(items, 1, 3))
	assert.Equal(t, []int{4, 5}, PageSlice(items, 2, 3))

	out := PageSlice(items, 3, 3)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	assert.Equal(t, items, PageSlice(items, 1, 100))
}
