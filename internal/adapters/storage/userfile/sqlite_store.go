package userfile

import (
	"context"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/userfile"
)

const fileColumns = "id, user_id, kind, folder, name, description, file_name, uploaded_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new user file store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create records an uploaded file.
// PRE: f has been validated and its blob written
// POST: Returns the new id
func (s *SQLiteStore) Create(ctx context.Context, f domain.File) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO user_files (user_id, kind, folder, name, description, file_name, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.UserID, f.Kind, f.Folder, f.Name, f.Description, f.FileName, storage.FormatTime(f.UploadedAt),
	)
	if err != nil {
		return 0, storage.Classify("create user file", err, nil)
	}
	id, err := res.LastInsertId()
	return id, storage.Classify("create user file", err, nil)
}

// GetForOwner retrieves a file row only if userID owns it.
// POST: Returns domain.ErrNotFound for a missing or foreign row
func (s *SQLiteStore) GetForOwner(ctx context.Context, userID, id int64) (domain.File, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+fileColumns+" FROM user_files WHERE id = ? AND user_id = ?", id, userID)
	f, err := scanFile(row.Scan)
	return f, storage.Classify("get user file", err, domain.ErrNotFound)
}

// ListByOwner returns userID's files of one kind, newest first.
func (s *SQLiteStore) ListByOwner(ctx context.Context, userID int64, kind string) ([]domain.File, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+fileColumns+" FROM user_files WHERE user_id = ? AND kind = ? ORDER BY uploaded_at DESC, id DESC",
		userID, kind)
	if err != nil {
		return nil, storage.Classify("list user files", err, nil)
	}
	defer rows.Close()

	var out []domain.File
	for rows.Next() {
		f, err := scanFile(rows.Scan)
		if err != nil {
			return nil, storage.Classify("scan user file", err, nil)
		}
		out = append(out, f)
	}
	return out, storage.Classify("list user files", rows.Err(), nil)
}

// Folders returns the distinct folder names userID has uploaded into.
func (s *SQLiteStore) Folders(ctx context.Context, userID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT folder FROM user_files WHERE user_id = ? AND kind = ? ORDER BY folder COLLATE NOCASE",
		userID, domain.KindFolder)
	if err != nil {
		return nil, storage.Classify("list folders", err, nil)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storage.Classify("scan folder", err, nil)
		}
		out = append(out, name)
	}
	return out, storage.Classify("list folders", rows.Err(), nil)
}

// DeleteForOwner removes a file row owned by userID.
// POST: Returns domain.ErrNotFound if nothing was deleted
func (s *SQLiteStore) DeleteForOwner(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM user_files WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return storage.Classify("delete user file", err, nil)
	}
	return storage.RequireAffected(res, "delete user file", domain.ErrNotFound)
}

// CountByKind returns the number of stored files per kind across all users.
func (s *SQLiteStore) CountByKind(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT kind, COUNT(*) FROM user_files GROUP BY kind")
	if err != nil {
		return nil, storage.Classify("count user files", err, nil)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, storage.Classify("scan user file count", err, nil)
		}
		out[kind] = n
	}
	return out, storage.Classify("count user files", rows.Err(), nil)
}

func scanFile(scan func(dest ...any) error) (domain.File, error) {
	var f domain.File
	var uploaded string
	if err := scan(&f.ID, &f.UserID, &f.Kind, &f.Folder, &f.Name, &f.Description, &f.FileName, &uploaded); err != nil {
		return domain.File{}, err
	}
	f.UploadedAt = storage.ParseTime(uploaded)
	return f, nil
}
