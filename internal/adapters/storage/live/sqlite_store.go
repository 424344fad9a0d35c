package live

import (
	"context"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/live"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new live class store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Class by its ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Class, error) {
	var c domain.Class
	err := s.db.QueryRowContext(ctx,
		"SELECT id, grade, link, schedule FROM live_classes WHERE id = ?", id,
	).Scan(&c.ID, &c.Grade, &c.Link, &c.Schedule)
	return c, storage.Classify("get live class", err, domain.ErrNotFound)
}

// ListByGrade returns the classes for one grade, oldest first.
func (s *SQLiteStore) ListByGrade(ctx context.Context, grade string) ([]domain.Class, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, grade, link, schedule FROM live_classes WHERE grade = ? ORDER BY id", grade)
	if err != nil {
		return nil, storage.Classify("list live classes", err, nil)
	}
	defer rows.Close()

	var out []domain.Class
	for rows.Next() {
		var c domain.Class
		if err := rows.Scan(&c.ID, &c.Grade, &c.Link, &c.Schedule); err != nil {
			return nil, storage.Classify("scan live class", err, nil)
		}
		out = append(out, c)
	}
	return out, storage.Classify("list live classes", rows.Err(), nil)
}

// Create inserts a live class.
func (s *SQLiteStore) Create(ctx context.Context, c domain.Class) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO live_classes (grade, link, schedule) VALUES (?, ?, ?)", c.Grade, c.Link, c.Schedule)
	if err != nil {
		return 0, storage.Classify("create live class", err, nil)
	}
	id, err := res.LastInsertId()
	return id, storage.Classify("create live class", err, nil)
}

// Update overwrites the class with c.ID.
func (s *SQLiteStore) Update(ctx context.Context, c domain.Class) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE live_classes SET grade = ?, link = ?, schedule = ? WHERE id = ?", c.Grade, c.Link, c.Schedule, c.ID)
	if err != nil {
		return storage.Classify("update live class", err, nil)
	}
	return storage.RequireAffected(res, "update live class", domain.ErrNotFound)
}

// Delete removes a live class.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM live_classes WHERE id = ?", id)
	if err != nil {
		return storage.Classify("delete live class", err, nil)
	}
	return storage.RequireAffected(res, "delete live class", domain.ErrNotFound)
}
