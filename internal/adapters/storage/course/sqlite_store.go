package course

import (
	"context"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/course"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new course store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Course by its ID.
// PRE: id > 0
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Course, error) {
	var c domain.Course
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, website, discipline, duration, level, link, trailer FROM courses WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Website, &c.Discipline, &c.Duration, &c.Level, &c.Link, &c.Trailer)
	return c, storage.Classify("get course", err, domain.ErrNotFound)
}

// Create inserts a course.
// PRE: c has been validated
// POST: Returns the new id
func (s *SQLiteStore) Create(ctx context.Context, c domain.Course) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO courses (name, description, website, discipline, duration, level, link, trailer)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Description, c.Website, c.Discipline, c.Duration, c.Level, c.Link, c.Trailer,
	)
	if err != nil {
		return 0, storage.Classify("create course", err, nil)
	}
	id, err := res.LastInsertId()
	return id, storage.Classify("create course", err, nil)
}

// Update overwrites every field of the course with c.ID.
// PRE: c has been validated
// POST: Returns domain.ErrNotFound if no row has c.ID
func (s *SQLiteStore) Update(ctx context.Context, c domain.Course) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE courses SET name = ?, description = ?, website = ?, discipline = ?, duration = ?, level = ?, link = ?, trailer = ?
		 WHERE id = ?`,
		c.Name, c.Description, c.Website, c.Discipline, c.Duration, c.Level, c.Link, c.Trailer, c.ID,
	)
	if err != nil {
		return storage.Classify("update course", err, nil)
	}
	return storage.RequireAffected(res, "update course", domain.ErrNotFound)
}

// Delete removes a course. Progress rows cascade.
// POST: Returns domain.ErrNotFound if no row has id
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return storage.Classify("delete course", err, nil)
	}
	return storage.RequireAffected(res, "delete course", domain.ErrNotFound)
}

// SchoolSQLiteStore implements SchoolStore using SQLite.
type SchoolSQLiteStore struct {
	db storage.SQLDB
}

// NewSchoolSQLiteStore creates a new school course store.
func NewSchoolSQLiteStore(db storage.SQLDB) *SchoolSQLiteStore {
	return &SchoolSQLiteStore{db: db}
}

// GetByID retrieves a SchoolCourse by its ID.
func (s *SchoolSQLiteStore) GetByID(ctx context.Context, id int64) (domain.SchoolCourse, error) {
	var c domain.SchoolCourse
	err := s.db.QueryRowContext(ctx,
		"SELECT id, subject, grade, website, video_link FROM school_courses WHERE id = ?", id,
	).Scan(&c.ID, &c.Subject, &c.Grade, &c.Website, &c.VideoLink)
	return c, storage.Classify("get school course", err, domain.ErrNotFound)
}

// Create inserts a school course.
func (s *SchoolSQLiteStore) Create(ctx context.Context, c domain.SchoolCourse) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO school_courses (subject, grade, website, video_link) VALUES (?, ?, ?, ?)",
		c.Subject, c.Grade, c.Website, c.VideoLink,
	)
	if err != nil {
		return 0, storage.Classify("create school course", err, nil)
	}
	id, err := res.LastInsertId()
	return id, storage.Classify("create school course", err, nil)
}

// Update overwrites the school course with c.ID.
func (s *SchoolSQLiteStore) Update(ctx context.Context, c domain.SchoolCourse) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE school_courses SET subject = ?, grade = ?, website = ?, video_link = ? WHERE id = ?",
		c.Subject, c.Grade, c.Website, c.VideoLink, c.ID,
	)
	if err != nil {
		return storage.Classify("update school course", err, nil)
	}
	return storage.RequireAffected(res, "update school course", domain.ErrNotFound)
}

// Delete removes a school course.
func (s *SchoolSQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM school_courses WHERE id = ?", id)
	if err != nil {
		return storage.Classify("delete school course", err, nil)
	}
	return storage.RequireAffected(res, "delete school course", domain.ErrNotFound)
}
