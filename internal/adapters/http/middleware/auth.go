package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	domainAccount "usdh/internal/domain/account"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const (
	sessionContextKey contextKey = "session"
	tokenContextKey   contextKey = "session_token"
)

// SessionTTL is how long a login lasts.
const SessionTTL = 24 * time.Hour

// SecureCookies marks session cookies Secure. Set in production.
var SecureCookies = false

// Session is the authenticated identity carried between requests.
type Session struct {
	UserID    int64
	Username  string
	Email     string
	Role      string
	CreatedAt time.Time
}

// IsAdmin reports whether the session holds the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == domainAccount.RoleAdmin
}

// SessionStore is an in-memory session store.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	now      func() time.Time
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create stores sess under a fresh random token.
// PRE: sess.UserID > 0 and sess.Role is set
// POST: Session is stored, token is returned
func (ss *SessionStore) Create(sess Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	sess.CreatedAt = ss.now()
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = sess
	return token, nil
}

// Get retrieves a live session by token. Expired sessions are dropped.
func (ss *SessionStore) Get(token string) (Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	sess, ok := ss.sessions[token]
	if !ok {
		return Session{}, false
	}
	if ss.now().Sub(sess.CreatedAt) > SessionTTL {
		delete(ss.sessions, token)
		return Session{}, false
	}
	return sess, true
}

// Update replaces the identity stored under token, keeping its creation time.
// POST: Returns false if token is unknown
func (ss *SessionStore) Update(token string, sess Session) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	old, ok := ss.sessions[token]
	if !ok {
		return false
	}
	sess.CreatedAt = old.CreatedAt
	ss.sessions[token] = sess
	return true
}

// Delete removes a session by token.
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

const sessionCookieName = "usdh_session"

// Auth returns middleware that loads the session named by the cookie into the context.
// It never blocks; Guard decides access.
func Auth(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				if sess, ok := sessions.Get(cookie.Value); ok {
					ctx := context.WithValue(r.Context(), sessionContextKey, sess)
					ctx = context.WithValue(ctx, tokenContextKey, cookie.Value)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(Session)
	return sess, ok
}

// GetTokenFromContext returns the token of the current session, if any.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok && token != ""
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
