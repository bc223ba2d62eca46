package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Pagination defaults and sort orders.
const (
	DefaultPageSize  = 5
	MinPageSize      = 1
	MaxPageSize      = 1000
	DefaultPage      = 1
	MinPage          = 1
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPageSize   = errors.New("page-size must be between 1 and 1000")
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'Name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
)

// Page returns the items of the 1-based page pageNumber.
// The slice is clamped to the available items: it may be shorter than
// pageSize or empty, and invalid arguments yield an empty page.
func Page[T any](items []T, pageNumber, pageSize int) []T {
	if pageNumber < MinPage || pageSize < MinPageSize {
		return []T{}
	}

	start := (pageNumber - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}

	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// TotalPages returns ceil(total/pageSize), or 0 when there is nothing to page.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize < MinPageSize {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// ValidatePageSize checks that size is within the allowed bounds.
func ValidatePageSize(size int) error {
	if size < MinPageSize || size > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, size)
	}
	return nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "Name", "Name:desc", "LastModifiedBy.Name:asc".
// An empty string returns an empty field and the default order.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return "", DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}
