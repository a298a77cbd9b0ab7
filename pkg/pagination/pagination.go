package pagination

import (
	"strconv"
	"strings"
)

// Page is one window of a listing plus the metadata the UI needs for its
// page-jump controls.
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageList    []int `json:"pageList"`
}

// ParsePage interprets a raw page parameter. Anything that is not a positive
// integer degrades to page 1 instead of surfacing an error.
func ParsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 1 {
		return 1
	}
	return parsed
}

// Paginate slices items into a page of pageSize rows. Out-of-range requests
// fall back to page 1; an empty collection still yields one (empty) page.
func Paginate[T any](items []T, pageSize, requested int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if requested < 1 || requested > totalPages {
		requested = 1
	}

	start := (requested - 1) * pageSize
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	pageList := make([]int, totalPages)
	for i := range pageList {
		pageList[i] = i + 1
	}

	return Page[T]{
		Items:       items[start:end],
		CurrentPage: requested,
		TotalPages:  totalPages,
		PageList:    pageList,
	}
}
