package certificate

import (
	"path"
	"strconv"
	"strings"
	"time"

	"usdh/internal/domain/apperr"
)

// Domain errors
var (
	ErrEmptyName        = apperr.Validation("certificate name is required")
	ErrInvalidIssueDate = apperr.Validation("issue date must be YYYY-MM-DD")
	ErrNotFound         = apperr.NotFound("certificate not found")
)

// DateLayout is the format issue dates are stored in.
const DateLayout = "2006-01-02"

// Certificate is an uploaded certificate that can be cited on a resume.
type Certificate struct {
	ID           int64
	UserID       int64
	Name         string
	Organization string
	IssueDate    string
	FileName     string
	UploadedAt   time.Time
}

// Validate checks if the Certificate has valid data.
// PRE: Certificate struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Certificate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.IssueDate != "" {
		if _, err := time.Parse(DateLayout, c.IssueDate); err != nil {
			return ErrInvalidIssueDate
		}
	}
	return nil
}

// Key returns the blob key of the certificate file, or "" if none was uploaded.
func (c *Certificate) Key() string {
	if c.FileName == "" {
		return ""
	}
	return path.Join("certificates", strconv.FormatInt(c.UserID, 10), c.FileName)
}
