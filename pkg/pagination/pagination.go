// Package pagination holds the shared page envelope and query defaults used
// by every paged listing in the service.
package pagination

import "strconv"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is the listing envelope returned to clients.
type Page[T any] struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalPages  int   `json:"total_pages"`
	Data        []T   `json:"data"`
}

func NewPage[T any](data []T, total int64, page, pageSize int) Page[T] {
	return Page[T]{
		Total:       total,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  TotalPages(total, pageSize),
		Data:        data,
	}
}

// TotalPages is ceil(total/pageSize).
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// Clamp normalizes raw page/pageSize values to sane bounds.
func Clamp(page, pageSize int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// AtoiDefault parses s as an int, falling back to def on empty or bad input.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
