package certificate

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/certificate"
)

var certColumns = []string{"id", "user_id", "name", "organization", "issue_date", "file_name", "uploaded_at"}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new certificate store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create records a certificate.
// PRE: c has been validated
func (s *SQLiteStore) Create(ctx context.Context, c domain.Certificate) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO certificates (user_id, name, organization, issue_date, file_name, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.UserID, c.Name, c.Organization, c.IssueDate, c.FileName, storage.FormatTime(c.UploadedAt),
	)
	if err != nil {
		return 0, storage.Classify("create certificate", err, nil)
	}
	id, err := res.LastInsertId()
	return id, storage.Classify("create certificate", err, nil)
}

// GetForOwner retrieves a certificate only if userID owns it.
func (s *SQLiteStore) GetForOwner(ctx context.Context, userID, id int64) (domain.Certificate, error) {
	out, err := s.list(ctx, sq.Eq{"user_id": userID, "id": id})
	if err != nil {
		return domain.Certificate{}, err
	}
	if len(out) == 0 {
		return domain.Certificate{}, domain.ErrNotFound
	}
	return out[0], nil
}

// ListByOwner returns userID's certificates, newest first.
func (s *SQLiteStore) ListByOwner(ctx context.Context, userID int64) ([]domain.Certificate, error) {
	return s.list(ctx, sq.Eq{"user_id": userID})
}

// ListByIDs returns the subset of ids that userID owns.
// Unknown and foreign ids are skipped.
func (s *SQLiteStore) ListByIDs(ctx context.Context, userID int64, ids []int64) ([]domain.Certificate, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.list(ctx, sq.Eq{"user_id": userID, "id": ids})
}

// DeleteForOwner removes a certificate owned by userID.
func (s *SQLiteStore) DeleteForOwner(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM certificates WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return storage.Classify("delete certificate", err, nil)
	}
	return storage.RequireAffected(res, "delete certificate", domain.ErrNotFound)
}

// Count returns the number of certificates across all users.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM certificates").Scan(&n)
	return n, storage.Classify("count certificates", err, nil)
}

func (s *SQLiteStore) list(ctx context.Context, where sq.Eq) ([]domain.Certificate, error) {
	query, args, err := sq.Select(certColumns...).
		From("certificates").
		Where(where).
		OrderBy("uploaded_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, storage.Classify("build certificate query", err, nil)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storage.Classify("list certificates", err, nil)
	}
	defer rows.Close()

	var out []domain.Certificate
	for rows.Next() {
		var c domain.Certificate
		var uploaded string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Organization, &c.IssueDate, &c.FileName, &uploaded); err != nil {
			return nil, storage.Classify("scan certificate", err, nil)
		}
		c.UploadedAt = storage.ParseTime(uploaded)
		out = append(out, c)
	}
	return out, storage.Classify("list certificates", rows.Err(), nil)
}
