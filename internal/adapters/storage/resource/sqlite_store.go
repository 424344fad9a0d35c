package resource

import (
	"context"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/resource"
)

// SQLiteStore implements Store using SQLite.
// Rows are addressed by primary key only.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new e-resource store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an EResource by its ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.EResource, error) {
	var e domain.EResource
	err := s.db.QueryRowContext(ctx,
		"SELECT id, website, preference, subject, state, link FROM eresources WHERE id = ?", id,
	).Scan(&e.ID, &e.Website, &e.Preference, &e.Subject, &e.State, &e.Link)
	return e, storage.Classify("get e-resource", err, domain.ErrNotFound)
}

// Create inserts an e-resource.
// PRE: e has been validated
func (s *SQLiteStore) Create(ctx context.Context, e domain.EResource) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO eresources (website, preference, subject, state, link) VALUES (?, ?, ?, ?, ?)",
		e.Website, e.Preference, e.Subject, e.State, e.Link,
	)
	if err != nil {
		return 0, storage.Classify("create e-resource", err, nil)
	}
	id, err := res.LastInsertId()
	return id, storage.Classify("create e-resource", err, nil)
}

// Update overwrites the e-resource with e.ID.
// POST: Returns domain.ErrNotFound if no row has e.ID
func (s *SQLiteStore) Update(ctx context.Context, e domain.EResource) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE eresources SET website = ?, preference = ?, subject = ?, state = ?, link = ? WHERE id = ?",
		e.Website, e.Preference, e.Subject, e.State, e.Link, e.ID,
	)
	if err != nil {
		return storage.Classify("update e-resource", err, nil)
	}
	return storage.RequireAffected(res, "update e-resource", domain.ErrNotFound)
}

// Delete removes an e-resource.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM eresources WHERE id = ?", id)
	if err != nil {
		return storage.Classify("delete e-resource", err, nil)
	}
	return storage.RequireAffected(res, "delete e-resource", domain.ErrNotFound)
}
