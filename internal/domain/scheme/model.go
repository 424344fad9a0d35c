package scheme

import (
	"strings"

	"usdh/internal/domain/apperr"
)

// Domain errors
var (
	ErrEmptyName = apperr.Validation("scheme name is required")
	ErrNotFound  = apperr.NotFound("scheme not found")
)

// Scheme is a scholarship or government education scheme.
type Scheme struct {
	ID          int64
	Name        string
	Benefits    string
	Eligibility string
	Link        string
}

// Validate checks if the Scheme has valid data.
func (s *Scheme) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
