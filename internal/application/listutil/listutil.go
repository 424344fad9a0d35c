package listutil

import (
	"net/url"
	"strconv"
	"strings"
)

// PageSize is the fixed number of cards shown per catalog page.
const PageSize = 10

// SearchParam is the query parameter carrying free-text search.
const SearchParam = "q"

// FilterParams carries search and filter parameters.
type FilterParams struct {
	Search  string            // free-text search query
	Filters map[string]string // exact-match filters (e.g. discipline=Commerce)
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PerPage)
}

// ListParams combines the page number with search and filters.
type ListParams struct {
	Page int
	FilterParams
}

// ParsePage extracts the 1-indexed page number.
// PRE: none
// POST: returns >= 1
func ParsePage(q url.Values) int {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

// ParseFilterParams extracts search and named filters from URL query values.
// "All" and empty values mean no filter.
// PRE: filterKeys lists the allowed filter parameter names
// POST: returns FilterParams with only recognised keys
func ParseFilterParams(q url.Values, filterKeys []string) FilterParams {
	fp := FilterParams{
		Search:  strings.TrimSpace(q.Get(SearchParam)),
		Filters: make(map[string]string),
	}
	for _, key := range filterKeys {
		if v := strings.TrimSpace(q.Get(key)); v != "" && v != "All" {
			fp.Filters[key] = v
		}
	}
	return fp
}

// ParseListParams parses the page number, search and filters.
func ParseListParams(q url.Values, filterKeys []string) ListParams {
	return ListParams{
		Page:         ParsePage(q),
		FilterParams: ParseFilterParams(q, filterKeys),
	}
}

// Query re-encodes the filters and search for pagination links.
// The page parameter is left for the template to append.
func (p ListParams) Query() string {
	v := url.Values{}
	for k, val := range p.Filters {
		v.Set(k, val)
	}
	if p.Search != "" {
		v.Set(SearchParam, p.Search)
	}
	return v.Encode()
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0, perPage > 0, page >= 1
// POST: returns PageInfo with TotalPages computed; Page clamped to valid range
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = PageSize
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Paginate returns the slice of items on the requested page.
// Out-of-range pages clamp to the nearest valid page.
// INVARIANT: items is not mutated
func Paginate[T any](items []T, page int) ([]T, PageInfo) {
	info := NewPageInfo(page, PageSize, len(items))
	start := info.Offset()
	end := min(start+info.PerPage, len(items))
	if start >= end {
		return nil, info
	}
	return items[start:end], info
}

// Offset returns the index of the first row on the current page.
// PRE: PageInfo is valid
// POST: Returns (Page-1) * PerPage
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow returns the 1-indexed first row number on the current page.
// POST: Returns 0 if Total is 0, otherwise Offset+1
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow returns the 1-indexed last row number on the current page.
func (p PageInfo) EndRow() int {
	return min(p.Offset()+p.PerPage, p.Total)
}

// HasPrev reports whether a previous page exists.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }

// Prev returns the previous page number.
func (p PageInfo) Prev() int { return max(p.Page-1, 1) }

// Next returns the next page number.
func (p PageInfo) Next() int { return min(p.Page+1, p.TotalPages) }

// PageNumbers returns at most 5 page numbers centered on the current page.
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := max(p.Page-maxButtons/2, 1)
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = max(end-maxButtons+1, 1)
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ShowPagination returns true if there is more than one page.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}
