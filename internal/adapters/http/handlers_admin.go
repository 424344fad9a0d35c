package web

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"usdh/internal/adapters/chart"
	auditStore "usdh/internal/adapters/storage/audit"
	"usdh/internal/adapters/storage/catalog"
	"usdh/internal/application/listutil"
	"usdh/internal/application/orchestrators"
	"usdh/internal/application/projections"
	"usdh/internal/domain/apperr"
	"usdh/internal/domain/audit"
	"usdh/internal/domain/course"
	"usdh/internal/domain/live"
	"usdh/internal/domain/resource"
	"usdh/internal/domain/scheme"
)

// manageSection is one admin-managed catalog: its table plus typed
// create, update and delete actions bound to the entity's form.
type manageSection struct {
	Slug   string
	Table  catalog.Table
	create func(r *http.Request) (int64, error)
	update func(r *http.Request, id int64) error
	remove func(r *http.Request, id int64) error
}

// newSection binds form type F to the entry actions for entity T.
func newSection[T any, F orchestrators.EntryForm[T]](slug, table, entity string, store orchestrators.EntryStore[T]) manageSection {
	t, err := catalog.Lookup(table)
	if err != nil {
		panic(err)
	}
	depsFor := func(r *http.Request) orchestrators.EntryDeps[T] {
		sess := currentSession(r)
		deps := orchestrators.EntryDeps[T]{
			Store:  store,
			Entity: entity,
			Actor:  orchestrators.Actor{ID: sess.UserID, Username: sess.Username},
			Now:    timeNow,
		}
		if stores.Audit != nil {
			deps.Audit = stores.Audit
		}
		return deps
	}
	return manageSection{
		Slug:  slug,
		Table: t,
		create: func(r *http.Request) (int64, error) {
			var form F
			if err := bindForm(r, &form); err != nil {
				return 0, err
			}
			return orchestrators.ExecuteCreateEntry[T](r.Context(), form, depsFor(r))
		},
		update: func(r *http.Request, id int64) error {
			var form F
			if err := bindForm(r, &form); err != nil {
				return err
			}
			return orchestrators.ExecuteUpdateEntry[T](r.Context(), id, form, depsFor(r))
		},
		remove: func(r *http.Request, id int64) error {
			return orchestrators.ExecuteDeleteEntry[T](r.Context(), id, depsFor(r))
		},
	}
}

func courseAdmin() manageSection {
	return newSection[course.Course, orchestrators.CourseForm]("courses", catalog.TableCourses, "course", stores.Courses)
}

func schoolCourseAdmin() manageSection {
	return newSection[course.SchoolCourse, orchestrators.SchoolCourseForm]("school-courses", catalog.TableSchoolCourses, "school_course", stores.SchoolCourses)
}

func eResourceAdmin() manageSection {
	return newSection[resource.EResource, orchestrators.EResourceForm]("eresources", catalog.TableEResources, "eresource", stores.EResources)
}

func schemeAdmin() manageSection {
	return newSection[scheme.Scheme, orchestrators.SchemeForm]("schemes", catalog.TableSchemes, "scheme", stores.Schemes)
}

func liveClassAdmin() manageSection {
	return newSection[live.Class, orchestrators.LiveClassForm]("classes", catalog.TableLiveClasses, "live_class", stores.LiveClasses)
}

// manageURLs maps a catalog table to its admin page, filled by mountManage.
var manageURLs = map[string]string{}

// FormField is one input of the generic entry form.
type FormField struct {
	Name  string
	Label string
	Value string
}

// manageView carries everything a manage page needs.
type manageView struct {
	base     string
	sections []manageSection
	section  manageSection
	editID   int64
	values   map[string]string
	status   *Status
}

// mountManage registers the list, create, edit, update and delete routes of
// every section under base. GET base shows the first section.
func mountManage(r chi.Router, base string, sections ...manageSection) {
	r.Get(base, func(w http.ResponseWriter, r *http.Request) {
		renderManage(w, r, manageView{base: base, sections: sections, section: sections[0]})
	})
	for _, s := range sections {
		prefix := base + "/" + s.Slug
		manageURLs[s.Table.Name] = prefix
		view := func(status *Status) manageView {
			return manageView{base: base, sections: sections, section: s, status: status}
		}

		r.Get(prefix, func(w http.ResponseWriter, r *http.Request) {
			renderManage(w, r, view(nil))
		})
		r.Post(prefix, func(w http.ResponseWriter, r *http.Request) {
			id, err := s.create(r)
			if err != nil {
				v := view(failure(err))
				v.values = submittedValues(r, s.Table)
				renderManage(w, r, v)
				return
			}
			renderManage(w, r, view(success("Entry added (#"+itoa(id)+").")))
		})
		r.Get(prefix+"/{id}/edit", func(w http.ResponseWriter, r *http.Request) {
			id, err := pathID(r, "id")
			var row catalog.Row
			if err == nil {
				row, err = stores.Catalog.Get(r.Context(), s.Table.Name, id)
			}
			if err != nil {
				if !errors.Is(err, apperr.ErrNotFound) {
					internalError(w, err)
					return
				}
				renderManage(w, r, view(failure(err)))
				return
			}
			v := view(nil)
			v.editID, v.values = row.ID, row.Values
			renderManage(w, r, v)
		})
		r.Post(prefix+"/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := pathID(r, "id")
			if err == nil {
				err = s.update(r, id)
			}
			if err != nil {
				v := view(failure(err))
				if !errors.Is(err, apperr.ErrNotFound) {
					v.editID, v.values = id, submittedValues(r, s.Table)
				}
				renderManage(w, r, v)
				return
			}
			renderManage(w, r, view(success("Entry updated.")))
		})
		r.Post(prefix+"/{id}/delete", func(w http.ResponseWriter, r *http.Request) {
			id, err := pathID(r, "id")
			if err == nil {
				err = s.remove(r, id)
			}
			if err != nil {
				renderManage(w, r, view(failure(err)))
				return
			}
			renderManage(w, r, view(success("Entry deleted.")))
		})
	}
}

func submittedValues(r *http.Request, t catalog.Table) map[string]string {
	values := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		values[c.Name] = r.PostForm.Get(c.Name)
	}
	return values
}

func renderManage(w http.ResponseWriter, r *http.Request, v manageView) {
	t := v.section.Table
	prefix := v.base + "/" + v.section.Slug

	// list state comes from the query string so paging survives actions
	params := listutil.ParseListParams(r.URL.Query(), t.FilterColumns())
	page, err := projections.QueryCatalogPage(r.Context(), projections.CatalogPageQuery{Table: t.Name, Params: params}, projections.CatalogPageDeps{Reader: stores.Catalog})
	if err != nil {
		internalError(w, err)
		return
	}

	tabs := make([]Tab, 0, len(v.sections))
	for _, s := range v.sections {
		tabs = append(tabs, Tab{Key: s.Slug, Label: s.Table.Label, URL: v.base + "/" + s.Slug, Active: s.Slug == v.section.Slug})
	}
	fields := make([]FormField, 0, len(t.Columns))
	for _, c := range t.Columns {
		fields = append(fields, FormField{Name: c.Name, Label: c.Label, Value: v.values[c.Name]})
	}

	action := prefix
	if v.editID > 0 {
		action = prefix + "/" + itoa(v.editID)
	}
	renderTemplate(w, r, "manage.html", map[string]any{
		"Title":     "Manage " + t.Label,
		"Tabs":      tabs,
		"Prefix":    prefix,
		"PageBase":  prefix,
		"Action":    action,
		"EditID":    v.editID,
		"Fields":    fields,
		"Catalog":   page,
		"ListQuery": template.URL(params.Query()),
		"Status":    v.status,
	})
}

// recentActivity is how many activity log lines the admin home shows.
const recentActivity = 10

// AdminCard is one catalog summary on the admin home page.
type AdminCard struct {
	Label     string
	Stats     catalog.Stats
	ManageURL string
}

// handleAdminHome renders GET /admin
func handleAdminHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var cards []AdminCard
	for _, name := range catalog.Tables() {
		t, _ := catalog.Lookup(name)
		st, err := stores.Catalog.Stats(ctx, name)
		if err != nil {
			internalError(w, err)
			return
		}
		cards = append(cards, AdminCard{Label: t.Label, Stats: st, ManageURL: manageURLs[name]})
	}
	users, err := stores.Accounts.Count(ctx)
	if err != nil {
		internalError(w, err)
		return
	}
	var activity []audit.Event
	if stores.Audit != nil {
		activity, err = stores.Audit.Recent(ctx, auditStore.Filter{}, recentActivity)
		if err != nil {
			internalError(w, err)
			return
		}
	}
	renderTemplate(w, r, "admin.html", map[string]any{
		"Cards":    cards,
		"Users":    users,
		"Activity": activity,
	})
}

func analyticsDeps() projections.AnalyticsDeps {
	deps := projections.AnalyticsDeps{
		Reader:       stores.Catalog,
		Accounts:     stores.Accounts,
		Files:        stores.Files,
		Certificates: stores.Certificates,
		Resumes:      stores.Resumes,
		StudyPlans:   stores.StudyPlans,
		Now:          timeNow,
	}
	if perfCollector != nil {
		deps.Perf = perfCollector
	}
	return deps
}

// handleAnalytics renders GET /analytics
func handleAnalytics(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryAnalytics(r.Context(), analyticsDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "analytics.html", map[string]any{"Analytics": res})
}

// handleAnalyticsChart serves GET /analytics/chart.png
func handleAnalyticsChart(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryAnalytics(r.Context(), analyticsDeps())
	if err != nil {
		internalError(w, err)
		return
	}
	png, err := chart.BarPNG("Catalog entries", res.ChartBars())
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
