package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"mime"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"usdh/internal/adapters/http/middleware"
	"usdh/internal/domain/apperr"
)

//go:embed templates/*.html
var templateFS embed.FS

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Status kinds drive the colour of the status line.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusInfo    = "info"
)

// Status is the one-line outcome shown after an action.
type Status struct {
	Kind    string
	Message string
}

func success(msg string) *Status { return &Status{Kind: StatusSuccess, Message: msg} }

func info(msg string) *Status { return &Status{Kind: StatusInfo, Message: msg} }

// failure converts an action error into a status line. Storage and
// unclassified errors are logged and shown generically.
func failure(err error) *Status {
	switch apperr.KindOf(err) {
	case apperr.KindStorage, apperr.KindUnknown:
		slog.Error("internal_error", "error", err.Error())
	}
	return &Status{Kind: StatusError, Message: apperr.Message(err)}
}

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// currentSession returns the identity Guard already admitted.
func currentSession(r *http.Request) middleware.Session {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return sess
}

// dashboardPath is the landing page for a role.
func dashboardPath(role string) string {
	if role == "admin" {
		return "/admin"
	}
	return "/user"
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data map[string]any) {
	renderStatus(w, r, http.StatusOK, templateName, data)
}

// renderStatus renders layout.html around templateName into a buffer so a
// template failure never leaves a half-written page.
func renderStatus(w http.ResponseWriter, r *http.Request, code int, templateName string, data map[string]any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role, username := "", ""
	if ok {
		role, username = sess.Role, sess.Username
	}

	funcMap := template.FuncMap{
		"currentRole":     func() string { return role },
		"currentUsername": func() string { return username },
		"isLoggedIn":      func() bool { return role != "" },
		"csrfField":       func() template.HTML { return csrf.TemplateField(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02")
		},
		"contains":     func(list []string, s string) bool { return slices.Contains(list, s) },
		"join":         strings.Join,
		"originalName": originalName,
		"hasID":        func(ids []int64, id int64) bool { return slices.Contains(ids, id) },
		"dict": func(kv ...any) map[string]any {
			m := make(map[string]any, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				if k, ok := kv[i].(string); ok {
					m[k] = kv[i+1]
				}
			}
			return m
		},
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		internalError(w, err)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	buf.WriteTo(w)
}

// serveAttachment streams data as a download named name. The content type
// is sniffed unless the caller already set one.
func serveAttachment(w http.ResponseWriter, name string, data []byte) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", http.DetectContentType(data))
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// originalName strips the uuid prefix added to stored file names.
func originalName(stored string) string {
	if _, name, ok := strings.Cut(stored, "_"); ok && name != "" {
		return name
	}
	return stored
}

// pathID parses a positive integer route parameter.
func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound("no such record")
	}
	return id, nil
}

var errBadForm = apperr.Validation("invalid form submission")

// bindForm copies submitted values into the `form`-tagged fields of dst.
// Supported field kinds: string, int, int64, bool and []string.
// PRE: dst is a pointer to a struct
func bindForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return errBadForm
	}
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return errors.New("bindForm: dst must be a pointer to a struct")
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := sf.Tag.Get("form")
		if name == "" || !sf.IsExported() {
			continue
		}
		field := v.Field(i)
		raw := strings.TrimSpace(r.Form.Get(name))
		switch field.Kind() {
		case reflect.String:
			field.SetString(r.Form.Get(name))
		case reflect.Int, reflect.Int64:
			if raw == "" {
				field.SetInt(0)
				continue
			}
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				label := sf.Tag.Get("label")
				if label == "" {
					label = name
				}
				return apperr.Validationf("%s must be a whole number", label)
			}
			field.SetInt(n)
		case reflect.Bool:
			field.SetBool(raw != "" && raw != "false" && raw != "0")
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				field.Set(reflect.ValueOf(append([]string(nil), r.Form[name]...)))
			}
		}
	}
	return nil
}

// formIDs parses every value of key as a positive id, skipping junk.
func formIDs(r *http.Request, key string) []int64 {
	var ids []int64
	for _, raw := range r.Form[key] {
		if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
