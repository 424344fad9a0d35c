package web

import (
	"net/http"
	"strings"

	"usdh/internal/application/orchestrators"
	"usdh/internal/domain/studyplan"
)

// studyPlanForm is the generator form; it is echoed back so Save can resubmit it.
type studyPlanForm struct {
	Subject     string   `form:"subject"`
	Topics      string   `form:"topics"`
	Duration    int      `form:"duration" label:"Duration"`
	HoursPerDay int      `form:"hours_per_day" label:"Hours per day"`
	Preferences []string `form:"preferences"`
	Notes       string   `form:"notes"`
}

func (f studyPlanForm) request() studyplan.Request {
	return studyplan.Request{
		Subject:      f.Subject,
		Topics:       f.Topics,
		DurationDays: f.Duration,
		HoursPerDay:  f.HoursPerDay,
		Preferences:  f.Preferences,
	}
}

func defaultStudyPlanForm() studyPlanForm {
	return studyPlanForm{Duration: 7, HoursPerDay: 2, Preferences: []string{studyplan.PrefMorning}}
}

func studyPlanDeps() orchestrators.StudyPlanDeps {
	return orchestrators.StudyPlanDeps{Store: stores.StudyPlans, Now: timeNow}
}

// renderStudyPlan renders the generator page. data may carry Schedule,
// Saved and Status; the form and saved plans are always present.
func renderStudyPlan(w http.ResponseWriter, r *http.Request, form studyPlanForm, data map[string]any) {
	sess := currentSession(r)
	plans, err := stores.StudyPlans.ListByOwner(r.Context(), sess.UserID)
	if err != nil {
		internalError(w, err)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	data["Form"] = form
	data["Plans"] = plans
	data["Subjects"] = studyplan.Subjects
	data["Preferences"] = studyplan.ValidPreferences
	renderTemplate(w, r, "study_plan.html", data)
}

// handleStudyPlanPage renders GET /study-plan?subject=
// A known subject pre-fills its suggested topics.
func handleStudyPlanPage(w http.ResponseWriter, r *http.Request) {
	form := defaultStudyPlanForm()
	if subject := r.URL.Query().Get("subject"); subject != "" {
		form.Subject = subject
		form.Topics = strings.Join(studyplan.SuggestTopics(subject), ", ")
	}
	renderStudyPlan(w, r, form, nil)
}

// handleGenerateStudyPlan handles POST /study-plan/generate. Nothing is stored.
func handleGenerateStudyPlan(w http.ResponseWriter, r *http.Request) {
	var form studyPlanForm
	if err := bindForm(r, &form); err != nil {
		renderStudyPlan(w, r, form, map[string]any{"Status": failure(err)})
		return
	}
	sched, err := studyplan.Generate(form.request())
	if err != nil {
		renderStudyPlan(w, r, form, map[string]any{"Status": failure(err)})
		return
	}
	renderStudyPlan(w, r, form, map[string]any{"Schedule": sched})
}

// handleSaveStudyPlan handles POST /study-plan/save
func handleSaveStudyPlan(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	var form studyPlanForm
	if err := bindForm(r, &form); err != nil {
		renderStudyPlan(w, r, form, map[string]any{"Status": failure(err)})
		return
	}
	saved, err := orchestrators.ExecuteSaveStudyPlan(r.Context(), orchestrators.SaveStudyPlanInput{
		UserID:  sess.UserID,
		Request: form.request(),
		Notes:   form.Notes,
	}, studyPlanDeps())
	if err != nil {
		renderStudyPlan(w, r, form, map[string]any{"Status": failure(err)})
		return
	}
	renderStudyPlan(w, r, form, map[string]any{
		"Schedule": saved.Schedule,
		"Saved":    saved.Plan,
		"Status":   success("Study plan saved."),
	})
}

// handleViewStudyPlan renders GET /study-plan/{id}
func handleViewStudyPlan(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	id, err := pathID(r, "id")
	if err == nil {
		var saved orchestrators.SavedStudyPlan
		saved, err = orchestrators.ExecuteViewStudyPlan(r.Context(), sess.UserID, id, studyPlanDeps())
		if err == nil {
			form := studyPlanForm{
				Subject:     saved.Plan.Subject,
				Topics:      strings.Join(saved.Plan.Topics, ", "),
				Duration:    saved.Plan.DurationDays,
				HoursPerDay: saved.Plan.HoursPerDay,
				Preferences: saved.Plan.Preferences,
				Notes:       saved.Plan.Notes,
			}
			renderStudyPlan(w, r, form, map[string]any{"Schedule": saved.Schedule, "Saved": saved.Plan})
			return
		}
	}
	renderStudyPlan(w, r, defaultStudyPlanForm(), map[string]any{"Status": failure(err)})
}

// handleDeleteStudyPlan handles POST /study-plan/{id}/delete
func handleDeleteStudyPlan(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	id, err := pathID(r, "id")
	if err == nil {
		err = orchestrators.ExecuteDeleteStudyPlan(r.Context(), sess.UserID, id, studyPlanDeps())
	}
	status := success("Study plan deleted.")
	if err != nil {
		status = failure(err)
	}
	renderStudyPlan(w, r, defaultStudyPlanForm(), map[string]any{"Status": status})
}
