package listutil

import (
	"net/url"
	"reflect"
	"testing"
)

// TestParsePage covers defaults and invalid values.
func TestParsePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"3", 3},
		{"-2", 1},
		{"abc", 1},
	}
	for _, tt := range tests {
		if got := ParsePage(url.Values{"page": {tt.raw}}); got != tt.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

// TestParseFilterParams keeps only recognised keys and drops "All".
func TestParseFilterParams(t *testing.T) {
	q := url.Values{
		"q":          {"  chem "},
		"discipline": {"Chemistry"},
		"website":    {"All"},
		"password":   {"x"},
	}
	fp := ParseFilterParams(q, []string{"discipline", "website"})
	if fp.Search != "chem" {
		t.Errorf("Search = %q, want chem", fp.Search)
	}
	want := map[string]string{"discipline": "Chemistry"}
	if !reflect.DeepEqual(fp.Filters, want) {
		t.Errorf("Filters = %v, want %v", fp.Filters, want)
	}
}

// TestListParams_Query round-trips filters for pagination links.
func TestListParams_Query(t *testing.T) {
	p := ParseListParams(url.Values{"state": {"Kerala"}, "q": {"maths"}, "page": {"2"}}, []string{"state"})
	if p.Page != 2 {
		t.Errorf("Page = %d", p.Page)
	}
	if got := p.Query(); got != "q=maths&state=Kerala" {
		t.Errorf("Query() = %q", got)
	}
}

// TestNewPageInfo verifies clamping and totals.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name                string
		page, per, total    int
		wantPage, wantPages int
	}{
		{"empty", 1, 10, 0, 1, 1},
		{"exact", 1, 10, 10, 1, 1},
		{"one over", 2, 10, 11, 2, 2},
		{"past end", 9, 10, 25, 3, 3},
		{"zero page", 0, 10, 25, 1, 3},
		{"bad per page", 1, 0, 25, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewPageInfo(tt.page, tt.per, tt.total)
			if info.Page != tt.wantPage || info.TotalPages != tt.wantPages {
				t.Errorf("got page=%d pages=%d, want %d/%d", info.Page, info.TotalPages, tt.wantPage, tt.wantPages)
			}
		})
	}
}

// TestPaginate verifies the fixed page size of 10.
func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	page, info := Paginate(items, 1)
	if len(page) != PageSize || page[0] != 0 {
		t.Errorf("page 1 = %v", page)
	}
	if !info.HasNext() || info.HasPrev() {
		t.Errorf("page 1 navigation wrong: %+v", info)
	}

	page, info = Paginate(items, 3)
	if len(page) != 3 || page[0] != 20 {
		t.Errorf("page 3 = %v", page)
	}
	if info.StartRow() != 21 || info.EndRow() != 23 {
		t.Errorf("rows %d-%d, want 21-23", info.StartRow(), info.EndRow())
	}

	page, info = Paginate(items, 99)
	if info.Page != 3 || len(page) != 3 {
		t.Errorf("out of range page should clamp to last, got page %d len %d", info.Page, len(page))
	}

	page, info = Paginate([]int(nil), 1)
	if page != nil || info.StartRow() != 0 || info.ShowPagination() {
		t.Errorf("empty input: page=%v info=%+v", page, info)
	}
}

// TestPageNumbers verifies the window of page buttons.
func TestPageNumbers(t *testing.T) {
	tests := []struct {
		page, total int
		want        []int
	}{
		{1, 30, []int{1, 2, 3}},
		{1, 100, []int{1, 2, 3, 4, 5}},
		{5, 100, []int{3, 4, 5, 6, 7}},
		{10, 100, []int{6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		got := NewPageInfo(tt.page, PageSize, tt.total).PageNumbers()
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("PageNumbers(page=%d,total=%d) = %v, want %v", tt.page, tt.total, got, tt.want)
		}
	}
}
