package resume

import (
	"context"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/resume"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new resume download store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create records a generated PDF.
func (s *SQLiteStore) Create(ctx context.Context, d domain.Download) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO resume_downloads (user_id, template, file_name, created_at) VALUES (?, ?, ?, ?)",
		d.UserID, d.Template, d.FileName, storage.FormatTime(d.CreatedAt),
	)
	if err != nil {
		return 0, storage.Classify("create resume download", err, nil)
	}
	id, err := res.LastInsertId()
	return id, storage.Classify("create resume download", err, nil)
}

// GetForOwner retrieves a download only if userID owns it.
func (s *SQLiteStore) GetForOwner(ctx context.Context, userID, id int64) (domain.Download, error) {
	var d domain.Download
	var created string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, template, file_name, created_at FROM resume_downloads WHERE id = ? AND user_id = ?", id, userID,
	).Scan(&d.ID, &d.UserID, &d.Template, &d.FileName, &created)
	if err != nil {
		return domain.Download{}, storage.Classify("get resume download", err, domain.ErrNotFound)
	}
	d.CreatedAt = storage.ParseTime(created)
	return d, nil
}

// ListRecent returns at most limit downloads for userID, newest first.
func (s *SQLiteStore) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Download, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, template, file_name, created_at FROM resume_downloads
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, storage.Classify("list resume downloads", err, nil)
	}
	defer rows.Close()

	var out []domain.Download
	for rows.Next() {
		var d domain.Download
		var created string
		if err := rows.Scan(&d.ID, &d.UserID, &d.Template, &d.FileName, &created); err != nil {
			return nil, storage.Classify("scan resume download", err, nil)
		}
		d.CreatedAt = storage.ParseTime(created)
		out = append(out, d)
	}
	return out, storage.Classify("list resume downloads", rows.Err(), nil)
}

// Count returns the number of generated resumes across all users.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM resume_downloads").Scan(&n)
	return n, storage.Classify("count resume downloads", err, nil)
}
