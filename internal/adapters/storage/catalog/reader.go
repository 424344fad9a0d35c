package catalog

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"usdh/internal/adapters/storage"
	"usdh/internal/domain/apperr"
)

// Query carries the user-supplied narrowing for a List call.
type Query struct {
	Filters map[string]string // column -> exact value, ANDed
	Search  string            // case-insensitive substring, ORed across searchable columns
}

// Row is one catalog row. ID is always carried so actions can address it.
type Row struct {
	ID     int64
	Values map[string]string
}

// Get returns the value of col, or "" if absent.
func (r Row) Get(col string) string {
	return r.Values[col]
}

// Distinct counts for Stats.
type DistinctStat struct {
	Column string
	Label  string
	Count  int
}

// Stats summarises a catalog table.
type Stats struct {
	Table    string
	Total    int
	Distinct []DistinctStat
}

// GroupCount is one bucket of a GROUP BY count.
type GroupCount struct {
	Value string
	Count int
}

// Reader turns a named catalog into rows. All values are bound parameters;
// identifiers come only from the registry.
type Reader struct {
	db storage.SQLDB
}

// NewReader creates a Reader over db.
func NewReader(db storage.SQLDB) *Reader {
	return &Reader{db: db}
}

// List returns every row of table matching q, ordered by the table's sort column.
// PRE: none
// POST: Unknown table returns apperr NotFound; filters on unknown columns are ignored
func (r *Reader) List(ctx context.Context, table string, q Query) ([]Row, error) {
	t, err := Lookup(table)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, "id")
	for _, c := range t.Columns {
		cols = append(cols, quote(c.Name))
	}

	builder := where(sq.Select(cols...).From(quote(t.Name)), t, q).
		OrderBy(quote(t.OrderBy)+" COLLATE NOCASE", "id")

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperr.Storage("build catalog query", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Classify("list "+t.Name, err, nil)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		row, err := scanRow(rows, t)
		if err != nil {
			return nil, storage.Classify("scan "+t.Name, err, nil)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Classify("list "+t.Name, err, nil)
	}
	return out, nil
}

// Get returns a single row by primary key.
func (r *Reader) Get(ctx context.Context, table string, id int64) (Row, error) {
	t, err := Lookup(table)
	if err != nil {
		return Row{}, err
	}
	cols := append([]string{"id"}, quoteAll(t.ColumnNames())...)
	query, args, err := sq.Select(cols...).From(quote(t.Name)).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Row{}, apperr.Storage("build catalog query", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Row{}, storage.Classify("get "+t.Name, err, nil)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Row{}, storage.Classify("get "+t.Name, err, nil)
		}
		return Row{}, apperr.NotFound("record not found")
	}
	row, err := scanRow(rows, t)
	if err != nil {
		return Row{}, storage.Classify("scan "+t.Name, err, nil)
	}
	return row, nil
}

// Distinct returns the sorted non-empty values of a filterable column,
// narrowed by the other filters in q. The column's own filter is ignored.
func (r *Reader) Distinct(ctx context.Context, table, column string, q Query) ([]string, error) {
	t, err := Lookup(table)
	if err != nil {
		return nil, err
	}
	c, ok := t.Column(column)
	if !ok || !c.Filter {
		return nil, apperr.Validation("column " + column + " cannot be listed")
	}

	narrowed := Query{Filters: make(map[string]string, len(q.Filters))}
	for k, v := range q.Filters {
		if k != column {
			narrowed.Filters[k] = v
		}
	}

	builder := where(sq.Select("DISTINCT "+quote(c.Name)).From(quote(t.Name)), t, narrowed).
		Where(sq.NotEq{quote(c.Name): ""}).
		OrderBy(quote(c.Name) + " COLLATE NOCASE")
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, apperr.Storage("build distinct query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Classify("distinct "+t.Name, err, nil)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, storage.Classify("distinct "+t.Name, err, nil)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Count returns the number of rows in table.
func (r *Reader) Count(ctx context.Context, table string) (int, error) {
	t, err := Lookup(table)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quote(t.Name)).Scan(&n); err != nil {
		return 0, storage.Classify("count "+t.Name, err, nil)
	}
	return n, nil
}

// GroupCount counts rows per value of a filterable column, largest first.
// Empty values are reported as "Unspecified".
func (r *Reader) GroupCount(ctx context.Context, table, column string) ([]GroupCount, error) {
	t, err := Lookup(table)
	if err != nil {
		return nil, err
	}
	c, ok := t.Column(column)
	if !ok || !c.Filter {
		return nil, apperr.Validation("column " + column + " cannot be grouped")
	}
	col := quote(c.Name)
	query, args, err := sq.Select(col, "COUNT(*)").From(quote(t.Name)).
		GroupBy(col).OrderBy("COUNT(*) DESC", col).ToSql()
	if err != nil {
		return nil, apperr.Storage("build group query", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Classify("group "+t.Name, err, nil)
	}
	defer rows.Close()

	var out []GroupCount
	for rows.Next() {
		var g GroupCount
		if err := rows.Scan(&g.Value, &g.Count); err != nil {
			return nil, storage.Classify("group "+t.Name, err, nil)
		}
		if g.Value == "" {
			g.Value = "Unspecified"
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Stats returns the row total and distinct counts of the table's stat columns.
func (r *Reader) Stats(ctx context.Context, table string) (Stats, error) {
	t, err := Lookup(table)
	if err != nil {
		return Stats{}, err
	}
	sel := []string{"COUNT(*)"}
	var stat []Column
	for _, c := range t.Columns {
		if c.Stat {
			sel = append(sel, "COUNT(DISTINCT NULLIF("+quote(c.Name)+", ''))")
			stat = append(stat, c)
		}
	}
	query, args, err := sq.Select(sel...).From(quote(t.Name)).ToSql()
	if err != nil {
		return Stats{}, apperr.Storage("build stats query", err)
	}

	counts := make([]int, len(sel))
	dest := make([]any, len(sel))
	for i := range counts {
		dest[i] = &counts[i]
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		return Stats{}, storage.Classify("stats "+t.Name, err, nil)
	}

	s := Stats{Table: t.Name, Total: counts[0]}
	for i, c := range stat {
		s.Distinct = append(s.Distinct, DistinctStat{Column: c.Name, Label: c.Label, Count: counts[i+1]})
	}
	return s, nil
}

// where applies equality filters and the search disjunction.
func where(b sq.SelectBuilder, t Table, q Query) sq.SelectBuilder {
	eq := sq.Eq{}
	for col, val := range q.Filters {
		if c, ok := t.Column(col); ok && c.Filter && val != "" {
			eq[quote(c.Name)] = val
		}
	}
	if len(eq) > 0 {
		b = b.Where(eq)
	}

	search := strings.TrimSpace(q.Search)
	if search == "" {
		return b
	}
	pattern := "%" + escapeLike(storage.Fold(search)) + "%"
	var or sq.Or
	for _, c := range t.Columns {
		if c.Search {
			or = append(or, sq.Expr(storage.FoldFunc+"("+quote(c.Name)+`) LIKE ? ESCAPE '\'`, pattern))
		}
	}
	if len(or) > 0 {
		b = b.Where(or)
	}
	return b
}

func scanRow(rows *sql.Rows, t Table) (Row, error) {
	vals := make([]sql.NullString, len(t.Columns))
	dest := make([]any, 0, len(t.Columns)+1)
	var row Row
	dest = append(dest, &row.ID)
	for i := range vals {
		dest = append(dest, &vals[i])
	}
	if err := rows.Scan(dest...); err != nil {
		return Row{}, err
	}
	row.Values = make(map[string]string, len(t.Columns))
	for i, c := range t.Columns {
		row.Values[c.Name] = vals[i].String
	}
	return row, nil
}

func quote(ident string) string {
	return `"` + ident + `"`
}

func quoteAll(idents []string) []string {
	out := make([]string, len(idents))
	for i, s := range idents {
		out[i] = quote(s)
	}
	return out
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
