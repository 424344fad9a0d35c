package studyplan

import (
	"strings"
	"time"

	"usdh/internal/domain/apperr"
)

// Preference flags accepted by the generator.
const (
	PrefMorning  = "morning"
	PrefEvening  = "evening"
	PrefNight    = "night"
	PrefBreaks   = "breaks"
	PrefPractice = "practice"
)

// ValidPreferences contains all valid preference values.
var ValidPreferences = []string{PrefMorning, PrefEvening, PrefNight, PrefBreaks, PrefPractice}

// Limits on generator input.
const (
	MaxDurationDays = 365
	MaxHoursPerDay  = 24
)

// Domain errors
var (
	ErrEmptySubject      = apperr.Validation("subject is required")
	ErrNoTopics          = apperr.Validation("please enter at least one topic")
	ErrInvalidDuration   = apperr.Validation("duration must be between 1 and 365 days")
	ErrInvalidHours      = apperr.Validation("hours per day must be between 1 and 24")
	ErrInvalidPreference = apperr.Validation("unknown study preference")
	ErrNotFound          = apperr.NotFound("study plan not found")
)

// Request is the generator input.
type Request struct {
	Subject      string
	Topics       string // comma separated
	DurationDays int
	HoursPerDay  int
	Preferences  []string
}

// Validate checks the request before generation.
// PRE: none
// POST: Returns nil if Generate can run, error otherwise
func (r Request) Validate() error {
	if strings.TrimSpace(r.Subject) == "" {
		return ErrEmptySubject
	}
	if len(ParseTopics(r.Topics)) == 0 {
		return ErrNoTopics
	}
	if r.DurationDays < 1 || r.DurationDays > MaxDurationDays {
		return ErrInvalidDuration
	}
	if r.HoursPerDay < 1 || r.HoursPerDay > MaxHoursPerDay {
		return ErrInvalidHours
	}
	for _, p := range r.Preferences {
		if !isValidPreference(p) {
			return ErrInvalidPreference
		}
	}
	return nil
}

// Has reports whether the request carries the given preference flag.
func (r Request) Has(pref string) bool {
	for _, p := range r.Preferences {
		if p == pref {
			return true
		}
	}
	return false
}

// Plan is a saved study plan row.
type Plan struct {
	ID           int64
	UserID       int64
	Subject      string
	Topics       []string
	DurationDays int
	HoursPerDay  int
	Preferences  []string
	Notes        string
	CreatedAt    time.Time
}

// Request rebuilds the generator input from the saved row.
// INVARIANT: Plan fields are not mutated
func (p Plan) Request() Request {
	return Request{
		Subject:      p.Subject,
		Topics:       strings.Join(p.Topics, ","),
		DurationDays: p.DurationDays,
		HoursPerDay:  p.HoursPerDay,
		Preferences:  append([]string(nil), p.Preferences...),
	}
}

// NewPlan builds a Plan row from a validated request.
// PRE: req.Validate() == nil
func NewPlan(userID int64, req Request, notes string, now time.Time) Plan {
	return Plan{
		UserID:       userID,
		Subject:      strings.TrimSpace(req.Subject),
		Topics:       ParseTopics(req.Topics),
		DurationDays: req.DurationDays,
		HoursPerDay:  req.HoursPerDay,
		Preferences:  append([]string(nil), req.Preferences...),
		Notes:        notes,
		CreatedAt:    now,
	}
}

// ParseTopics splits a comma separated list, trimming and dropping empties.
func ParseTopics(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isValidPreference(p string) bool {
	for _, v := range ValidPreferences {
		if v == p {
			return true
		}
	}
	return false
}
