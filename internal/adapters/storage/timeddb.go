package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"usdh/internal/adapters/http/perf"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// DefaultSlowQuery is the default threshold for slow query warnings.
const DefaultSlowQuery = 50 * time.Millisecond

// TimedDB wraps a *sql.DB to log slow queries and optionally record to a collector.
// Satisfies the SQLDB interface so it can be passed to any store constructor.
type TimedDB struct {
	db        *sql.DB
	collector *perf.Collector
	threshold float64
}

// Compile-time check that *TimedDB satisfies SQLDB.
var _ SQLDB = (*TimedDB)(nil)

// NewTimedDB wraps a *sql.DB with timing instrumentation.
// A non-positive slow threshold uses DefaultSlowQuery.
// PRE: db is a valid database connection
// POST: Returns a TimedDB that logs slow queries and records to collector
func NewTimedDB(db *sql.DB, collector *perf.Collector, slow time.Duration) *TimedDB {
	if slow <= 0 {
		slow = DefaultSlowQuery
	}
	return &TimedDB{
		db:        db,
		collector: collector,
		threshold: float64(slow.Microseconds()) / 1000.0,
	}
}

// RawDB returns the underlying *sql.DB.
func (t *TimedDB) RawDB() *sql.DB {
	return t.db
}

func (t *TimedDB) logQuery(query string, start time.Time) {
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	label := queryLabel(query)

	if durationMs >= t.threshold {
		slog.Warn("slow_query", "query", label, "duration_ms", durationMs)
	} else {
		slog.Debug("query", "query", label, "duration_ms", durationMs)
	}

	if t.collector != nil {
		t.collector.Record(perf.Entry{
			Kind:       perf.KindQuery,
			Label:      label,
			DurationMs: durationMs,
			At:         start,
		})
	}
}

// ExecContext wraps sql.DB.ExecContext with timing.
func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := t.db.ExecContext(ctx, query, args...)
	t.logQuery(query, start)
	return result, err
}

// QueryContext wraps sql.DB.QueryContext with timing.
func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.db.QueryContext(ctx, query, args...)
	t.logQuery(query, start)
	return rows, err
}

// QueryRowContext wraps sql.DB.QueryRowContext with timing.
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.db.QueryRowContext(ctx, query, args...)
	t.logQuery(query, start)
	return row
}

// BeginTx wraps sql.DB.BeginTx with timing.
func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	start := time.Now()
	tx, err := t.db.BeginTx(ctx, opts)
	t.logQuery("BEGIN", start)
	return tx, err
}

// Close closes the underlying database connection.
func (t *TimedDB) Close() error {
	return t.db.Close()
}

// Ping verifies the database connection.
func (t *TimedDB) Ping(ctx context.Context) error {
	return t.db.PingContext(ctx)
}

// queryLabel reduces a statement to "VERB table" so timings group per table
// rather than per distinct argument list.
func queryLabel(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "?"
	}
	verb := strings.ToUpper(fields[0])
	var marker string
	switch verb {
	case "SELECT", "DELETE":
		marker = "FROM"
	case "INSERT":
		marker = "INTO"
	case "UPDATE":
		return verb + " " + trimIdent(at(fields, 1))
	default:
		return verb
	}
	for i, f := range fields {
		if strings.EqualFold(f, marker) {
			return verb + " " + trimIdent(at(fields, i+1))
		}
	}
	return verb
}

func at(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func trimIdent(s string) string {
	if i := strings.IndexAny(s, "( ,"); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(s, `"`+"`")
}
