package progress

import (
	"context"
	"database/sql"
	"time"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/progress"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new progress store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Start marks a course as ongoing for userID.
// INVARIANT: at most one row per (user, course); starting twice is a no-op
func (s *SQLiteStore) Start(ctx context.Context, userID, courseID int64, now time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO course_progress (user_id, course_id, status, start_date) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, course_id) DO NOTHING`,
		userID, courseID, domain.StatusOngoing, storage.FormatTime(now),
	)
	return storage.Classify("start course", err, nil)
}

// Complete marks a started course as completed.
// POST: Returns domain.ErrNotStarted if there is no progress row
func (s *SQLiteStore) Complete(ctx context.Context, userID, courseID int64, now time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE course_progress SET status = ?, completion_date = COALESCE(completion_date, ?)
		 WHERE user_id = ? AND course_id = ?`,
		domain.StatusCompleted, storage.FormatTime(now), userID, courseID,
	)
	if err != nil {
		return storage.Classify("complete course", err, nil)
	}
	return storage.RequireAffected(res, "complete course", domain.ErrNotStarted)
}

// Get returns the progress of one course.
func (s *SQLiteStore) Get(ctx context.Context, userID, courseID int64) (domain.Progress, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT p.id, p.user_id, p.course_id, c.name, p.status, p.start_date, p.completion_date
		 FROM course_progress p JOIN courses c ON c.id = p.course_id
		 WHERE p.user_id = ? AND p.course_id = ?`, userID, courseID)
	p, err := scanProgress(row.Scan)
	return p, storage.Classify("get progress", err, domain.ErrNotStarted)
}

// ListByOwner returns every course userID has started, most recent first.
func (s *SQLiteStore) ListByOwner(ctx context.Context, userID int64) ([]domain.Progress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.course_id, c.name, p.status, p.start_date, p.completion_date
		 FROM course_progress p JOIN courses c ON c.id = p.course_id
		 WHERE p.user_id = ? ORDER BY p.start_date DESC, p.id DESC`, userID)
	if err != nil {
		return nil, storage.Classify("list progress", err, nil)
	}
	defer rows.Close()

	var out []domain.Progress
	for rows.Next() {
		p, err := scanProgress(rows.Scan)
		if err != nil {
			return nil, storage.Classify("scan progress", err, nil)
		}
		out = append(out, p)
	}
	return out, storage.Classify("list progress", rows.Err(), nil)
}

func scanProgress(scan func(dest ...any) error) (domain.Progress, error) {
	var p domain.Progress
	var start string
	var done sql.NullString
	if err := scan(&p.ID, &p.UserID, &p.CourseID, &p.CourseName, &p.Status, &start, &done); err != nil {
		return domain.Progress{}, err
	}
	p.StartDate = storage.ParseTime(start)
	if done.Valid {
		p.CompletionDate = storage.ParseTime(done.String)
	}
	return p, nil
}
