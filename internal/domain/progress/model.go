package progress

import (
	"time"

	"usdh/internal/domain/apperr"
)

// Status constants
const (
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// ErrNotStarted is returned when completing a course that was never started.
var ErrNotStarted = apperr.NotFound("course has not been started")

// Progress tracks one user's enrolment in one course.
// INVARIANT: at most one Progress per (UserID, CourseID)
type Progress struct {
	ID             int64
	UserID         int64
	CourseID       int64
	CourseName     string
	Status         string
	StartDate      time.Time
	CompletionDate time.Time
}

// Complete marks the course as completed at the given time.
// PRE: Status is ongoing or completed
// POST: Status is completed; CompletionDate set once
func (p *Progress) Complete(now time.Time) {
	if p.Status == StatusCompleted {
		return
	}
	p.Status = StatusCompleted
	p.CompletionDate = now
}

// IsCompleted returns true once the course is completed.
func (p *Progress) IsCompleted() bool {
	return p.Status == StatusCompleted
}
