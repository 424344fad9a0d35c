package projections

import (
	"context"

	"usdh/internal/adapters/storage/catalog"
	"usdh/internal/application/listutil"
	"usdh/internal/application/views"
)

// CatalogPageQuery carries query parameters.
type CatalogPageQuery struct {
	Table  string
	Params listutil.ListParams
}

// FilterOptions is the dropdown for one filterable column.
type FilterOptions struct {
	Column   string
	Label    string
	Values   []string
	Selected string
}

// CatalogPageResult carries the query result.
type CatalogPageResult struct {
	Table   string
	Label   string
	Cards   []views.Card
	Page    listutil.PageInfo
	Params  listutil.ListParams
	Filters []FilterOptions
	Stats   catalog.Stats
}

// CatalogPageDeps holds dependencies for CatalogPage.
type CatalogPageDeps struct {
	Reader CatalogReader
}

// Empty reports whether there is nothing to show on the current page.
func (r CatalogPageResult) Empty() bool {
	return len(r.Cards) == 0
}

// QueryCatalogPage reads one filtered page of a catalog table.
// PRE: Table is a registered catalog name
// POST: Returns NotFound for unknown tables; filter options narrow by the other active filters
func QueryCatalogPage(ctx context.Context, query CatalogPageQuery, deps CatalogPageDeps) (CatalogPageResult, error) {
	t, err := catalog.Lookup(query.Table)
	if err != nil {
		return CatalogPageResult{}, err
	}
	q := catalog.Query{Filters: query.Params.Filters, Search: query.Params.Search}

	rows, err := deps.Reader.List(ctx, t.Name, q)
	if err != nil {
		return CatalogPageResult{}, err
	}
	pageRows, page := listutil.Paginate(rows, query.Params.Page)

	result := CatalogPageResult{
		Table:  t.Name,
		Label:  t.Label,
		Cards:  views.Format(t.Name, pageRows),
		Page:   page,
		Params: query.Params,
	}

	for _, name := range t.FilterColumns() {
		col, _ := t.Column(name)
		values, err := deps.Reader.Distinct(ctx, t.Name, name, q)
		if err != nil {
			return CatalogPageResult{}, err
		}
		result.Filters = append(result.Filters, FilterOptions{
			Column:   name,
			Label:    col.Label,
			Values:   values,
			Selected: query.Params.Filters[name],
		})
	}

	if result.Stats, err = deps.Reader.Stats(ctx, t.Name); err != nil {
		return CatalogPageResult{}, err
	}
	return result, nil
}
