package scheme

import (
	"context"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/scheme"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new scheme store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Scheme by its ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Scheme, error) {
	var sc domain.Scheme
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, benefits, eligibility, link FROM schemes WHERE id = ?", id,
	).Scan(&sc.ID, &sc.Name, &sc.Benefits, &sc.Eligibility, &sc.Link)
	return sc, storage.Classify("get scheme", err, domain.ErrNotFound)
}

// Create inserts a scheme.
func (s *SQLiteStore) Create(ctx context.Context, sc domain.Scheme) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO schemes (name, benefits, eligibility, link) VALUES (?, ?, ?, ?)",
		sc.Name, sc.Benefits, sc.Eligibility, sc.Link,
	)
	if err != nil {
		return 0, storage.Classify("create scheme", err, nil)
	}
	id, err := res.LastInsertId()
	return id, storage.Classify("create scheme", err, nil)
}

// Update overwrites the scheme with sc.ID.
func (s *SQLiteStore) Update(ctx context.Context, sc domain.Scheme) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE schemes SET name = ?, benefits = ?, eligibility = ?, link = ? WHERE id = ?",
		sc.Name, sc.Benefits, sc.Eligibility, sc.Link, sc.ID,
	)
	if err != nil {
		return storage.Classify("update scheme", err, nil)
	}
	return storage.RequireAffected(res, "update scheme", domain.ErrNotFound)
}

// Delete removes a scheme.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM schemes WHERE id = ?", id)
	if err != nil {
		return storage.Classify("delete scheme", err, nil)
	}
	return storage.RequireAffected(res, "delete scheme", domain.ErrNotFound)
}
