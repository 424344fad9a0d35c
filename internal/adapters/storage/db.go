package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// DSN builds the sqlite connection string with the pragmas every connection needs.
func DSN(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
}

// Open opens the shared database handle and verifies it is reachable.
// PRE: path is a writable file path
// POST: Returns a pooled handle with the schema applied
func Open(ctx context.Context, path string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(maxConns)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if err := InitDB(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables and indexes exist; existing data is untouched
func InitDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK (role IN ('user', 'admin')),
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS courses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	discipline TEXT NOT NULL DEFAULT '',
	duration TEXT NOT NULL DEFAULT '',
	level TEXT NOT NULL DEFAULT '',
	link TEXT NOT NULL DEFAULT '',
	trailer TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS school_courses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	subject TEXT NOT NULL,
	grade TEXT NOT NULL,
	website TEXT NOT NULL DEFAULT '',
	video_link TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS eresources (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	website TEXT NOT NULL,
	preference TEXT NOT NULL,
	subject TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	link TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS schemes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	benefits TEXT NOT NULL DEFAULT '',
	eligibility TEXT NOT NULL DEFAULT '',
	link TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS live_classes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	grade TEXT NOT NULL,
	link TEXT NOT NULL,
	schedule TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS user_files (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	kind TEXT NOT NULL,
	folder TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	file_name TEXT NOT NULL,
	uploaded_at TEXT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_user_files_owner ON user_files(user_id, kind);

CREATE TABLE IF NOT EXISTS certificates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	organization TEXT NOT NULL DEFAULT '',
	issue_date TEXT NOT NULL DEFAULT '',
	file_name TEXT NOT NULL DEFAULT '',
	uploaded_at TEXT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS study_plans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	subject TEXT NOT NULL,
	topics TEXT NOT NULL,
	duration INTEGER NOT NULL,
	hours_per_day INTEGER NOT NULL,
	preferences TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS resume_downloads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	template TEXT NOT NULL,
	file_name TEXT NOT NULL,
	created_at TEXT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS course_progress (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	course_id INTEGER NOT NULL,
	status TEXT NOT NULL CHECK (status IN ('ongoing', 'completed')),
	start_date TEXT NOT NULL,
	completion_date TEXT,
	UNIQUE (user_id, course_id),
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS audit_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	actor_id INTEGER NOT NULL DEFAULT 0,
	actor_name TEXT NOT NULL DEFAULT '',
	action TEXT NOT NULL,
	entity TEXT NOT NULL,
	entity_id INTEGER NOT NULL
);
`
