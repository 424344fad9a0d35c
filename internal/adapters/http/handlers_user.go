package web

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"usdh/internal/adapters/storage/catalog"
	"usdh/internal/application/listutil"
	"usdh/internal/application/orchestrators"
	"usdh/internal/application/projections"
	"usdh/internal/domain/apperr"
)

// userCatalogs are the tabs on the user dashboard, in display order.
var userCatalogs = []string{catalog.TableCourses, catalog.TableSchoolCourses, catalog.TableEResources, catalog.TableSchemes}

// Tab is one entry of a tab strip.
type Tab struct {
	Key    string
	Label  string
	URL    string
	Active bool
}

func catalogTabs(base, active string, tables []string) []Tab {
	tabs := make([]Tab, 0, len(tables))
	for _, name := range tables {
		t, err := catalog.Lookup(name)
		if err != nil {
			continue
		}
		tabs = append(tabs, Tab{Key: name, Label: t.Label, URL: base + "?catalog=" + name, Active: name == active})
	}
	return tabs
}

// listQuery re-encodes the catalog, filters and search for pagination links.
func listQuery(table string, params listutil.ListParams) template.URL {
	q := params.Query()
	v := url.Values{"catalog": {table}}
	if q != "" {
		return template.URL(v.Encode() + "&" + q)
	}
	return template.URL(v.Encode())
}

// handleUserDashboard renders GET /user?catalog=...
// Unknown catalogs show the empty state rather than an error.
func handleUserDashboard(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	ctx := r.Context()

	table := r.URL.Query().Get("catalog")
	if table == "" {
		table = catalog.TableCourses
	}

	data := map[string]any{
		"Tabs":     catalogTabs("/user", table, userCatalogs),
		"PageBase": "/user",
	}

	var filterKeys []string
	if t, err := catalog.Lookup(table); err == nil {
		filterKeys = t.FilterColumns()
	}
	params := listutil.ParseListParams(r.URL.Query(), filterKeys)
	page, err := projections.QueryCatalogPage(ctx, projections.CatalogPageQuery{Table: table, Params: params}, projections.CatalogPageDeps{Reader: stores.Catalog})
	switch {
	case err == nil:
		data["Catalog"] = page
		data["ListQuery"] = listQuery(table, params)
	case errors.Is(err, apperr.ErrNotFound):
		data["Status"] = info("That catalog is not available.")
	default:
		internalError(w, err)
		return
	}

	dash, err := projections.QueryUserDashboard(ctx, projections.UserDashboardQuery{UserID: sess.UserID}, projections.UserDashboardDeps{
		Progress:   stores.Progress,
		Resumes:    stores.Resumes,
		StudyPlans: stores.StudyPlans,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	data["Dashboard"] = dash
	renderTemplate(w, r, "user.html", data)
}

// handleCourseDetail renders GET /course/{id} and /course2/{id}
func handleCourseDetail(table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			renderCourse(w, r, table, 0, nil)
			return
		}
		renderCourse(w, r, table, id, nil)
	}
}

func renderCourse(w http.ResponseWriter, r *http.Request, table string, id int64, status *Status) {
	sess := currentSession(r)
	res, err := projections.QueryCourseDetail(r.Context(), projections.CourseDetailQuery{
		UserID: sess.UserID,
		Table:  table,
		ID:     id,
	}, projections.CourseDetailDeps{Reader: stores.Catalog, Progress: stores.Progress})
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			renderStatus(w, r, http.StatusNotFound, "course.html", map[string]any{
				"Status": &Status{Kind: StatusError, Message: "Course not found."},
			})
			return
		}
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "course.html", map[string]any{
		"Detail": res,
		"Status": status,
	})
}

// handleCourseProgress handles POST /user/progress/{courseID}/{start|complete}
func handleCourseProgress(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	courseID, err := pathID(r, "courseID")
	if err != nil {
		renderCourse(w, r, catalog.TableCourses, 0, nil)
		return
	}
	deps := orchestrators.ProgressDeps{Courses: stores.Courses, Progress: stores.Progress, Now: timeNow}

	var status *Status
	switch chi.URLParam(r, "action") {
	case "start":
		c, err := orchestrators.ExecuteStartCourse(r.Context(), sess.UserID, courseID, deps)
		if err != nil {
			status = failure(err)
		} else {
			status = success("Started " + c.Name + ".")
		}
	case "complete":
		c, err := orchestrators.ExecuteCompleteCourse(r.Context(), sess.UserID, courseID, deps)
		if err != nil {
			status = failure(err)
		} else {
			status = success("Completed " + c.Name + ".")
		}
	default:
		status = &Status{Kind: StatusError, Message: "Unknown action."}
	}
	renderCourse(w, r, catalog.TableCourses, courseID, status)
}

// handleLiveClasses renders GET /live?grade=
func handleLiveClasses(w http.ResponseWriter, r *http.Request) {
	res, err := projections.QueryLiveClasses(r.Context(), projections.LiveClassesQuery{Grade: r.URL.Query().Get("grade")}, projections.LiveClassesDeps{
		Reader:  stores.Catalog,
		Classes: stores.LiveClasses,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	data := map[string]any{"Live": res}
	if res.Grade != "" && len(res.Classes) == 0 {
		data["Status"] = info("No live classes are scheduled for this grade.")
	}
	renderTemplate(w, r, "live.html", data)
}
