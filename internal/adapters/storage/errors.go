package storage

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"usdh/internal/domain/apperr"
)

// TimeLayout is the format all timestamps are stored in.
const TimeLayout = time.RFC3339Nano

// Classify maps a driver error into the application taxonomy.
// sql.ErrNoRows becomes notFound, UNIQUE violations become Duplicate,
// anything else is a Storage error tagged with op.
func Classify(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) && notFound != nil {
		return notFound
	}
	if IsUniqueViolation(err) {
		return apperr.Duplicate("record already exists")
	}
	return apperr.Storage(op, err)
}

// IsUniqueViolation reports whether err is a sqlite UNIQUE constraint failure.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime accepts the stored layout plus the legacy formats.
func ParseTime(s string) time.Time {
	for _, f := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// RequireAffected turns a zero-row update or delete into notFound.
func RequireAffected(res sql.Result, op string, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(op, err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
