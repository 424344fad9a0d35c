package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"usdh/internal/domain/studyplan"
)

// StudyPlanStoreForActions defines the store interface needed by the study plan actions.
type StudyPlanStoreForActions interface {
	Create(ctx context.Context, p studyplan.Plan) (int64, error)
	GetForOwner(ctx context.Context, userID, id int64) (studyplan.Plan, error)
	DeleteForOwner(ctx context.Context, userID, id int64) error
}

// StudyPlanDeps holds dependencies for the study plan actions.
type StudyPlanDeps struct {
	Store StudyPlanStoreForActions
	Now   func() time.Time
}

// SaveStudyPlanInput carries a plan the user chose to keep.
type SaveStudyPlanInput struct {
	UserID  int64
	Request studyplan.Request
	Notes   string
}

// SavedStudyPlan is a stored plan with its regenerated schedule.
type SavedStudyPlan struct {
	Plan     studyplan.Plan
	Schedule studyplan.Schedule
}

// ExecuteSaveStudyPlan validates the request and stores the plan row.
// Generation is repeated so an invalid request is never persisted.
// PRE: UserID identifies the session user
// POST: Plan row created for UserID
func ExecuteSaveStudyPlan(ctx context.Context, input SaveStudyPlanInput, deps StudyPlanDeps) (SavedStudyPlan, error) {
	sched, err := studyplan.Generate(input.Request)
	if err != nil {
		return SavedStudyPlan{}, err
	}
	plan := studyplan.NewPlan(input.UserID, input.Request, strings.TrimSpace(input.Notes), now(deps.Now))
	id, err := deps.Store.Create(ctx, plan)
	if err != nil {
		return SavedStudyPlan{}, err
	}
	plan.ID = id
	slog.Info("study_plan_event", "event", "saved", "user_id", input.UserID, "plan_id", id, "days", plan.DurationDays)
	return SavedStudyPlan{Plan: plan, Schedule: sched}, nil
}

// ExecuteViewStudyPlan loads an owned plan and regenerates its schedule.
// POST: studyplan.ErrNotFound for missing or foreign plans
func ExecuteViewStudyPlan(ctx context.Context, userID, id int64, deps StudyPlanDeps) (SavedStudyPlan, error) {
	plan, err := deps.Store.GetForOwner(ctx, userID, id)
	if err != nil {
		return SavedStudyPlan{}, err
	}
	sched, err := studyplan.Generate(plan.Request())
	if err != nil {
		return SavedStudyPlan{}, err
	}
	return SavedStudyPlan{Plan: plan, Schedule: sched}, nil
}

// ExecuteDeleteStudyPlan removes an owned plan.
// POST: studyplan.ErrNotFound for missing or foreign plans
func ExecuteDeleteStudyPlan(ctx context.Context, userID, id int64, deps StudyPlanDeps) error {
	if err := deps.Store.DeleteForOwner(ctx, userID, id); err != nil {
		return err
	}
	slog.Info("study_plan_event", "event", "deleted", "user_id", userID, "plan_id", id)
	return nil
}
