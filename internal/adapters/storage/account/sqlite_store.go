package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"usdh/internal/adapters/storage"
	domain "usdh/internal/domain/account"
)

const userColumns = "id, username, email, password_hash, role, created_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new user store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a User by its ID.
// PRE: id > 0
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row.Scan)
	return u, storage.Classify("get user", err, domain.ErrNotFound)
}

// GetByUsername retrieves a User by exact username.
// PRE: username is non-empty
// POST: Returns the entity or domain.ErrNotFound
func (s *SQLiteStore) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
	u, err := scanUser(row.Scan)
	return u, storage.Classify("get user", err, domain.ErrNotFound)
}

// Create inserts a new user after checking username and email are free.
// The check and the insert share one transaction.
// PRE: user has been validated and PasswordHash is set
// POST: Returns the new id, or ErrUsernameTaken / ErrEmailTaken with no row written
func (s *SQLiteStore) Create(ctx context.Context, user domain.User) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storage.Classify("begin create user", err, nil)
	}
	defer tx.Rollback()

	if taken, err := exists(ctx, tx, "SELECT 1 FROM users WHERE username = ?", user.Username); err != nil {
		return 0, err
	} else if taken {
		return 0, domain.ErrUsernameTaken
	}
	if taken, err := exists(ctx, tx, "SELECT 1 FROM users WHERE email = ?", user.Email); err != nil {
		return 0, err
	} else if taken {
		return 0, domain.ErrEmailTaken
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)",
		user.Username, user.Email, user.PasswordHash, user.Role, storage.FormatTime(user.CreatedAt),
	)
	if err != nil {
		return 0, classifyUnique("create user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storage.Classify("create user", err, nil)
	}
	if err := tx.Commit(); err != nil {
		return 0, classifyUnique("commit create user", err)
	}
	return id, nil
}

// UpdateUsername renames a user.
// PRE: username has been validated
// POST: Returns ErrUsernameTaken if another user holds the name
func (s *SQLiteStore) UpdateUsername(ctx context.Context, id int64, username string) error {
	return s.updateUnique(ctx, id, "username", username, domain.ErrUsernameTaken)
}

// UpdateEmail changes a user's email address.
// PRE: email has been validated
// POST: Returns ErrEmailTaken if another user holds the address
func (s *SQLiteStore) UpdateEmail(ctx context.Context, id int64, email string) error {
	return s.updateUnique(ctx, id, "email", email, domain.ErrEmailTaken)
}

func (s *SQLiteStore) updateUnique(ctx context.Context, id int64, column, value string, taken error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Classify("begin update "+column, err, nil)
	}
	defer tx.Rollback()

	dup, err := exists(ctx, tx, "SELECT 1 FROM users WHERE "+column+" = ? AND id <> ?", value, id)
	if err != nil {
		return err
	}
	if dup {
		return taken
	}
	res, err := tx.ExecContext(ctx, "UPDATE users SET "+column+" = ? WHERE id = ?", value, id)
	if err != nil {
		return classifyUnique("update "+column, err)
	}
	if err := storage.RequireAffected(res, "update "+column, domain.ErrNotFound); err != nil {
		return err
	}
	return storage.Classify("commit update "+column, tx.Commit(), nil)
}

// UpdatePassword stores a new password hash.
// PRE: hash is a bcrypt hash
// POST: Returns domain.ErrNotFound if the user does not exist
func (s *SQLiteStore) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", hash, id)
	if err != nil {
		return storage.Classify("update password", err, nil)
	}
	return storage.RequireAffected(res, "update password", domain.ErrNotFound)
}

// Count returns the total number of users.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, storage.Classify("count users", err, nil)
}

// CountByRole returns the number of users holding role.
func (s *SQLiteStore) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE role = ?", role).Scan(&n)
	return n, storage.Classify("count users", err, nil)
}

func exists(ctx context.Context, tx *sql.Tx, query string, args ...any) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, storage.Classify("check user", err, nil)
	}
	return true, nil
}

// classifyUnique names the column a concurrent writer beat us to.
func classifyUnique(op string, err error) error {
	if storage.IsUniqueViolation(err) {
		if strings.Contains(err.Error(), "users.email") {
			return domain.ErrEmailTaken
		}
		return domain.ErrUsernameTaken
	}
	return storage.Classify(op, err, nil)
}

// scanUser extracts a User from a row scanner function.
func scanUser(scan func(dest ...any) error) (domain.User, error) {
	var u domain.User
	var createdAt string
	if err := scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &createdAt); err != nil {
		return domain.User{}, err
	}
	u.CreatedAt = storage.ParseTime(createdAt)
	return u, nil
}
