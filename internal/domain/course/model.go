package course

import (
	"strings"

	"usdh/internal/domain/apperr"
)

// Level constants for higher-education courses.
const (
	LevelUG = "UG"
	LevelPG = "PG"
)

// ValidLevels contains all valid level values.
var ValidLevels = []string{LevelUG, LevelPG}

// Domain errors
var (
	ErrEmptyName    = apperr.Validation("course name is required")
	ErrEmptyWebsite = apperr.Validation("website is required")
	ErrInvalidLevel = apperr.Validation("level must be UG or PG")
	ErrEmptySubject = apperr.Validation("subject is required")
	ErrEmptyGrade   = apperr.Validation("grade is required")
	ErrNotFound     = apperr.NotFound("course not found")
)

// Course is an undergraduate or postgraduate course listing.
type Course struct {
	ID          int64
	Name        string
	Description string
	Website     string
	Discipline  string
	Duration    string
	Level       string
	Link        string
	Trailer     string
}

// Validate checks if the Course has valid data.
// PRE: Course struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Website) == "" {
		return ErrEmptyWebsite
	}
	if c.Level != "" && c.Level != LevelUG && c.Level != LevelPG {
		return ErrInvalidLevel
	}
	return nil
}

// SchoolCourse is a school-grade video course.
type SchoolCourse struct {
	ID        int64
	Subject   string
	Grade     string
	Website   string
	VideoLink string
}

// Validate checks if the SchoolCourse has valid data.
// PRE: SchoolCourse struct is populated
// POST: Returns nil if valid, error otherwise
func (s *SchoolCourse) Validate() error {
	if strings.TrimSpace(s.Subject) == "" {
		return ErrEmptySubject
	}
	if strings.TrimSpace(s.Grade) == "" {
		return ErrEmptyGrade
	}
	return nil
}
