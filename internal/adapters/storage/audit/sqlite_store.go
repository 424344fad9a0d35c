package audit

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/audit"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new audit event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save appends an event to the activity log.
func (s *SQLiteStore) Save(ctx context.Context, e domain.Event) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_events (created_at, actor_id, actor_name, action, entity, entity_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		storage.FormatTime(e.Timestamp), e.ActorID, e.ActorName, string(e.Action), e.Entity, e.EntityID,
	)
	if err != nil {
		return 0, storage.Classify("save audit event", err, nil)
	}
	id, err := res.LastInsertId()
	return id, storage.Classify("save audit event", err, nil)
}

// Recent returns the newest events matching filter.
func (s *SQLiteStore) Recent(ctx context.Context, filter Filter, limit int) ([]domain.Event, error) {
	q := sq.Select("id", "created_at", "actor_id", "actor_name", "action", "entity", "entity_id").
		From("audit_events").
		OrderBy("id DESC").
		Limit(uint64(limit))
	if filter.Entity != "" {
		q = q.Where(sq.Eq{"entity": filter.Entity})
	}
	if filter.ActorID > 0 {
		q = q.Where(sq.Eq{"actor_id": filter.ActorID})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, storage.Classify("list audit events", err, nil)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Classify("list audit events", err, nil)
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		var ts, action string
		if err := rows.Scan(&e.ID, &ts, &e.ActorID, &e.ActorName, &action, &e.Entity, &e.EntityID); err != nil {
			return nil, storage.Classify("scan audit event", err, nil)
		}
		e.Timestamp = storage.ParseTime(ts)
		e.Action = domain.Action(action)
		out = append(out, e)
	}
	return out, storage.Classify("list audit events", rows.Err(), nil)
}
