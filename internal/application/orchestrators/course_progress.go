package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"usdh/internal/domain/course"
)

// CourseLookup defines the course lookup needed by the progress actions.
type CourseLookup interface {
	GetByID(ctx context.Context, id int64) (course.Course, error)
}

// ProgressStoreForActions defines the store interface needed by the progress actions.
type ProgressStoreForActions interface {
	Start(ctx context.Context, userID, courseID int64, now time.Time) error
	Complete(ctx context.Context, userID, courseID int64, now time.Time) error
}

// ProgressDeps holds dependencies for the progress actions.
type ProgressDeps struct {
	Courses  CourseLookup
	Progress ProgressStoreForActions
	Now      func() time.Time
}

// ExecuteStartCourse enrols the user in a course.
// PRE: none
// POST: An ongoing progress row exists; repeating is a no-op
func ExecuteStartCourse(ctx context.Context, userID, courseID int64, deps ProgressDeps) (course.Course, error) {
	c, err := deps.Courses.GetByID(ctx, courseID)
	if err != nil {
		return course.Course{}, err
	}
	if err := deps.Progress.Start(ctx, userID, courseID, now(deps.Now)); err != nil {
		return course.Course{}, err
	}
	slog.Info("progress_event", "event", "started", "user_id", userID, "course_id", courseID)
	return c, nil
}

// ExecuteCompleteCourse marks a started course as completed.
// POST: progress.ErrNotStarted if the user never started it; completion date is kept from the first call
func ExecuteCompleteCourse(ctx context.Context, userID, courseID int64, deps ProgressDeps) (course.Course, error) {
	c, err := deps.Courses.GetByID(ctx, courseID)
	if err != nil {
		return course.Course{}, err
	}
	if err := deps.Progress.Complete(ctx, userID, courseID, now(deps.Now)); err != nil {
		return course.Course{}, err
	}
	slog.Info("progress_event", "event", "completed", "user_id", userID, "course_id", courseID)
	return c, nil
}
