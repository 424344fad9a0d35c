package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"usdh/internal/application/validation"
	"usdh/internal/domain/audit"
	"usdh/internal/domain/course"
	"usdh/internal/domain/live"
	"usdh/internal/domain/resource"
	"usdh/internal/domain/scheme"
)

// EntryStore is the store shape shared by every admin-managed catalog.
type EntryStore[T any] interface {
	Create(ctx context.Context, entry T) (int64, error)
	Update(ctx context.Context, entry T) error
	Delete(ctx context.Context, id int64) error
}

// EntryForm is a typed admin form that converts into a validated domain entry.
type EntryForm[T any] interface {
	Entry(id int64) (T, error)
}

// AuditRecorder appends to the admin activity log.
type AuditRecorder interface {
	Save(ctx context.Context, event audit.Event) (int64, error)
}

// Actor identifies the admin performing an entry action.
type Actor struct {
	ID       int64
	Username string
}

// EntryDeps holds dependencies for the catalog entry actions.
type EntryDeps[T any] struct {
	Store  EntryStore[T]
	Entity string        // used in logs and the activity log
	Audit  AuditRecorder // optional
	Actor  Actor
	Now    func() time.Time
}

// record appends to the activity log. A failed write is logged and never
// fails the action that already happened.
func (d EntryDeps[T]) record(ctx context.Context, action audit.Action, id int64) {
	if d.Audit == nil {
		return
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	event := audit.NewEvent(d.Actor.ID, d.Actor.Username, action, d.Entity, id, now())
	if _, err := d.Audit.Save(ctx, event); err != nil {
		slog.Warn("audit_event", "event", "record_failed", "entity", d.Entity, "id", id, "error", err.Error())
	}
}

// ExecuteCreateEntry validates form and inserts a new row.
// PRE: form is a struct with validate tags
// POST: Returns the new primary key
func ExecuteCreateEntry[T any](ctx context.Context, form EntryForm[T], deps EntryDeps[T]) (int64, error) {
	entry, err := buildEntry(form, 0)
	if err != nil {
		return 0, err
	}
	id, err := deps.Store.Create(ctx, entry)
	if err != nil {
		return 0, err
	}
	slog.Info("catalog_event", "event", "created", "entity", deps.Entity, "id", id)
	deps.record(ctx, audit.ActionCreate, id)
	return id, nil
}

// ExecuteUpdateEntry validates form and overwrites the row with the given id.
// PRE: id > 0
// POST: Row updated, or the store's NotFound error
func ExecuteUpdateEntry[T any](ctx context.Context, id int64, form EntryForm[T], deps EntryDeps[T]) error {
	entry, err := buildEntry(form, id)
	if err != nil {
		return err
	}
	if err := deps.Store.Update(ctx, entry); err != nil {
		return err
	}
	slog.Info("catalog_event", "event", "updated", "entity", deps.Entity, "id", id)
	deps.record(ctx, audit.ActionUpdate, id)
	return nil
}

// ExecuteDeleteEntry removes the row with the given id.
// POST: Row gone, or the store's NotFound error
func ExecuteDeleteEntry[T any](ctx context.Context, id int64, deps EntryDeps[T]) error {
	if err := deps.Store.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("catalog_event", "event", "deleted", "entity", deps.Entity, "id", id)
	deps.record(ctx, audit.ActionDelete, id)
	return nil
}

func buildEntry[T any](form EntryForm[T], id int64) (T, error) {
	if err := validation.Struct(form); err != nil {
		var zero T
		return zero, err
	}
	return form.Entry(id)
}

// CourseForm is the UG/PG course admin form.
type CourseForm struct {
	Name        string `form:"name" label:"Course name" validate:"notblank"`
	Description string `form:"description"`
	Website     string `form:"website" label:"Website" validate:"notblank"`
	Discipline  string `form:"discipline"`
	Duration    string `form:"duration"`
	Level       string `form:"level" label:"Level" validate:"omitempty,oneof=UG PG"`
	Link        string `form:"link"`
	Trailer     string `form:"trailer"`
}

// Entry converts the form into a validated course.
func (f CourseForm) Entry(id int64) (course.Course, error) {
	c := course.Course{
		ID:          id,
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Website:     strings.TrimSpace(f.Website),
		Discipline:  strings.TrimSpace(f.Discipline),
		Duration:    strings.TrimSpace(f.Duration),
		Level:       strings.TrimSpace(f.Level),
		Link:        strings.TrimSpace(f.Link),
		Trailer:     strings.TrimSpace(f.Trailer),
	}
	return c, c.Validate()
}

// SchoolCourseForm is the school course admin form.
type SchoolCourseForm struct {
	Subject   string `form:"subject" label:"Subject" validate:"notblank"`
	Grade     string `form:"grade" label:"Grade" validate:"notblank"`
	Website   string `form:"website"`
	VideoLink string `form:"video_link" yaml:"video_link"`
}

// Entry converts the form into a validated school course.
func (f SchoolCourseForm) Entry(id int64) (course.SchoolCourse, error) {
	c := course.SchoolCourse{
		ID:        id,
		Subject:   strings.TrimSpace(f.Subject),
		Grade:     strings.TrimSpace(f.Grade),
		Website:   strings.TrimSpace(f.Website),
		VideoLink: strings.TrimSpace(f.VideoLink),
	}
	return c, c.Validate()
}

// EResourceForm is the e-resource admin form.
type EResourceForm struct {
	Website    string `form:"website" label:"Website" validate:"notblank"`
	Preference string `form:"preference" label:"Preference" validate:"notblank,oneof=School College"`
	Subject    string `form:"subject"`
	State      string `form:"state"`
	Link       string `form:"link" label:"Link" validate:"notblank"`
}

// Entry converts the form into a validated e-resource.
func (f EResourceForm) Entry(id int64) (resource.EResource, error) {
	e := resource.EResource{
		ID:         id,
		Website:    strings.TrimSpace(f.Website),
		Preference: strings.TrimSpace(f.Preference),
		Subject:    strings.TrimSpace(f.Subject),
		State:      strings.TrimSpace(f.State),
		Link:       strings.TrimSpace(f.Link),
	}
	return e, e.Validate()
}

// SchemeForm is the scholarship scheme admin form.
type SchemeForm struct {
	Name        string `form:"name" label:"Scheme name" validate:"notblank"`
	Benefits    string `form:"benefits"`
	Eligibility string `form:"eligibility"`
	Link        string `form:"link"`
}

// Entry converts the form into a validated scheme.
func (f SchemeForm) Entry(id int64) (scheme.Scheme, error) {
	s := scheme.Scheme{
		ID:          id,
		Name:        strings.TrimSpace(f.Name),
		Benefits:    strings.TrimSpace(f.Benefits),
		Eligibility: strings.TrimSpace(f.Eligibility),
		Link:        strings.TrimSpace(f.Link),
	}
	return s, s.Validate()
}

// LiveClassForm is the live class admin form.
type LiveClassForm struct {
	Grade    string `form:"grade" label:"Grade" validate:"notblank"`
	Link     string `form:"link" label:"Class link" validate:"notblank"`
	Schedule string `form:"schedule"`
}

// Entry converts the form into a validated live class.
func (f LiveClassForm) Entry(id int64) (live.Class, error) {
	c := live.Class{
		ID:       id,
		Grade:    strings.TrimSpace(f.Grade),
		Link:     strings.TrimSpace(f.Link),
		Schedule: strings.TrimSpace(f.Schedule),
	}
	return c, c.Validate()
}
