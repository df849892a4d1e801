// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of records shown per page.
const PageSize = 10

// MaxPageSize caps the page size a caller can request through the query string.
const MaxPageSize = 100

// ParsePage extracts the 1-based "page" query parameter.
// Returns 0 if not present or invalid so callers can tell "absent" from page 1.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParsePageSize extracts the "size" query parameter, falling back to def when
// missing or invalid and clamping to MaxPageSize.
func ParsePageSize(r *http.Request, def int) int {
	if def <= 0 {
		def = PageSize
	}
	s := query.Get(r, "size")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// TotalPages returns ceil(totalItems/pageSize), never negative.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Range holds computed display range values for a paginated list.
type Range struct {
	Start int // 1-based start index (0 if no results)
	End   int // 1-based end index (0 if no results)
	Total int
}

// ComputeRange calculates the "showing Start–End of Total" values for a page.
func ComputeRange(page, pageSize, shown, total int) Range {
	if shown == 0 || page < 1 || pageSize <= 0 {
		return Range{Total: total}
	}
	start := (page-1)*pageSize + 1
	return Range{
		Start: start,
		End:   start + shown - 1,
		Total: total,
	}
}
