package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	domainAccount "usdh/internal/domain/account"
)

// LoginPath is where every refused request is sent.
const LoginPath = "/login"

// Access levels for a path.
type Access uint8

const (
	AccessUnknown Access = iota
	AccessPublic
	AccessUser
	AccessAdmin
)

var publicPaths = map[string]bool{
	"/":        true,
	"/login":   true,
	"/signup":  true,
	"/logout":  true,
	"/healthz": true,
	"/metrics": true,
}

var adminPrefixes = []string{"/admin", "/manage-courses", "/manage-resources", "/manage-schemes", "/manage-live", "/analytics"}

var userPrefixes = []string{"/user", "/resume-maker", "/my-space", "/study-plan", "/live", "/course", "/course2", "/download-resume", "/profile"}

// Classify maps a request path to the access level it needs.
// Prefixes match whole segments, so /users is unknown rather than a user path.
func Classify(path string) Access {
	if publicPaths[path] || strings.HasPrefix(path, "/static/") {
		return AccessPublic
	}
	for _, p := range adminPrefixes {
		if hasSegmentPrefix(path, p) {
			return AccessAdmin
		}
	}
	for _, p := range userPrefixes {
		if hasSegmentPrefix(path, p) {
			return AccessUser
		}
	}
	return AccessUnknown
}

// Authorize decides whether the identity may see path.
// A nil identity is an anonymous visitor. Any refusal means redirect to LoginPath.
func Authorize(path string, identity *Session) bool {
	switch Classify(path) {
	case AccessPublic:
		return true
	case AccessAdmin:
		return identity != nil && identity.Role == domainAccount.RoleAdmin
	case AccessUser:
		return identity != nil && identity.Role == domainAccount.RoleUser
	default:
		return false
	}
}

// Guard redirects every request Authorize refuses to LoginPath with 303.
// There is no forbidden page.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var identity *Session
		if sess, ok := GetSessionFromContext(r.Context()); ok {
			identity = &sess
		}
		if !Authorize(r.URL.Path, identity) {
			if identity != nil {
				slog.Info("auth_event", "event", "route_denied", "path", r.URL.Path, "user_id", identity.UserID, "role", identity.Role)
			}
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
