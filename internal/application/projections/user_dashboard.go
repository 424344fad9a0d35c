package projections

import (
	"context"

	domainProgress "usdh/internal/domain/progress"
	domainResume "usdh/internal/domain/resume"
	domainStudyPlan "usdh/internal/domain/studyplan"
)

// UserDashboardQuery carries query parameters.
type UserDashboardQuery struct {
	UserID int64
}

// UserDashboardResult carries the query result.
type UserDashboardResult struct {
	Courses       []domainProgress.Progress
	Ongoing       int
	Completed     int
	RecentResumes []domainResume.Download
	StudyPlans    []domainStudyPlan.Plan
}

// UserDashboardDeps holds dependencies for UserDashboard.
type UserDashboardDeps struct {
	Progress   ProgressStore
	Resumes    ResumeStore    // optional
	StudyPlans StudyPlanStore // optional
}

// QueryUserDashboard retrieves the "My Courses" list and recent activity.
// PRE: UserID identifies the session user
// POST: RecentResumes holds at most resume.HistoryLimit rows, newest first
func QueryUserDashboard(ctx context.Context, query UserDashboardQuery, deps UserDashboardDeps) (UserDashboardResult, error) {
	courses, err := deps.Progress.ListByOwner(ctx, query.UserID)
	if err != nil {
		return UserDashboardResult{}, err
	}
	result := UserDashboardResult{Courses: courses}
	for _, p := range courses {
		if p.IsCompleted() {
			result.Completed++
		} else {
			result.Ongoing++
		}
	}

	if deps.Resumes != nil {
		if result.RecentResumes, err = deps.Resumes.ListRecent(ctx, query.UserID, domainResume.HistoryLimit); err != nil {
			return UserDashboardResult{}, err
		}
	}
	if deps.StudyPlans != nil {
		if result.StudyPlans, err = deps.StudyPlans.ListByOwner(ctx, query.UserID); err != nil {
			return UserDashboardResult{}, err
		}
	}
	return result, nil
}
