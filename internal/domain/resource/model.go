package resource

import (
	"strings"

	"usdh/internal/domain/apperr"
)

// Preference constants
const (
	PreferenceSchool  = "School"
	PreferenceCollege = "College"
)

// Domain errors
var (
	ErrEmptyWebsite      = apperr.Validation("website is required")
	ErrInvalidPreference = apperr.Validation("preference must be School or College")
	ErrEmptyLink         = apperr.Validation("link is required")
	ErrNotFound          = apperr.NotFound("e-resource not found")
)

// EResource is an e-book or online library entry.
type EResource struct {
	ID         int64
	Website    string
	Preference string
	Subject    string
	State      string
	Link       string
}

// Validate checks if the EResource has valid data.
// PRE: EResource struct is populated
// POST: Returns nil if valid, error otherwise
func (e *EResource) Validate() error {
	if strings.TrimSpace(e.Website) == "" {
		return ErrEmptyWebsite
	}
	if e.Preference != PreferenceSchool && e.Preference != PreferenceCollege {
		return ErrInvalidPreference
	}
	if strings.TrimSpace(e.Link) == "" {
		return ErrEmptyLink
	}
	return nil
}
