package studyplan

import (
	"context"
	"encoding/json"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/studyplan"
)

const planColumns = "id, user_id, subject, topics, duration, hours_per_day, preferences, notes, created_at"

// SQLiteStore implements Store using SQLite.
// Topics and preferences are stored as JSON arrays.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new study plan store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create saves a plan.
// PRE: the plan's request has been validated
// POST: Returns the new id
func (s *SQLiteStore) Create(ctx context.Context, p domain.Plan) (int64, error) {
	topics, err := json.Marshal(nonNil(p.Topics))
	if err != nil {
		return 0, storage.Classify("encode topics", err, nil)
	}
	prefs, err := json.Marshal(nonNil(p.Preferences))
	if err != nil {
		return 0, storage.Classify("encode preferences", err, nil)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO study_plans (user_id, subject, topics, duration, hours_per_day, preferences, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Subject, string(topics), p.DurationDays, p.HoursPerDay, string(prefs), p.Notes, storage.FormatTime(p.CreatedAt),
	)
	if err != nil {
		return 0, storage.Classify("create study plan", err, nil)
	}
	id, err := res.LastInsertId()
	return id, storage.Classify("create study plan", err, nil)
}

// GetForOwner retrieves a plan only if userID owns it.
func (s *SQLiteStore) GetForOwner(ctx context.Context, userID, id int64) (domain.Plan, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+planColumns+" FROM study_plans WHERE id = ? AND user_id = ?", id, userID)
	p, err := scanPlan(row.Scan)
	return p, storage.Classify("get study plan", err, domain.ErrNotFound)
}

// ListByOwner returns userID's plans, newest first.
func (s *SQLiteStore) ListByOwner(ctx context.Context, userID int64) ([]domain.Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+planColumns+" FROM study_plans WHERE user_id = ? ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, storage.Classify("list study plans", err, nil)
	}
	defer rows.Close()

	var out []domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows.Scan)
		if err != nil {
			return nil, storage.Classify("scan study plan", err, nil)
		}
		out = append(out, p)
	}
	return out, storage.Classify("list study plans", rows.Err(), nil)
}

// DeleteForOwner removes a plan owned by userID.
func (s *SQLiteStore) DeleteForOwner(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM study_plans WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return storage.Classify("delete study plan", err, nil)
	}
	return storage.RequireAffected(res, "delete study plan", domain.ErrNotFound)
}

// Count returns the number of saved plans across all users.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM study_plans").Scan(&n)
	return n, storage.Classify("count study plans", err, nil)
}

func scanPlan(scan func(dest ...any) error) (domain.Plan, error) {
	var p domain.Plan
	var topics, prefs, created string
	if err := scan(&p.ID, &p.UserID, &p.Subject, &topics, &p.DurationDays, &p.HoursPerDay, &prefs, &p.Notes, &created); err != nil {
		return domain.Plan{}, err
	}
	if err := json.Unmarshal([]byte(topics), &p.Topics); err != nil {
		return domain.Plan{}, err
	}
	if err := json.Unmarshal([]byte(prefs), &p.Preferences); err != nil {
		return domain.Plan{}, err
	}
	p.CreatedAt = storage.ParseTime(created)
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
