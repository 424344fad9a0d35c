package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	ss := NewSessionStore()
	token, err := ss.Create(Session{UserID: 7, Username: "asha", Role: "user"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(token))
	}

	sess, ok := ss.Get(token)
	if !ok || sess.Username != "asha" {
		t.Fatalf("Get = %+v, %v", sess, ok)
	}

	if !ss.Update(token, Session{UserID: 7, Username: "asha2", Role: "user"}) {
		t.Fatal("Update returned false")
	}
	sess, _ = ss.Get(token)
	if sess.Username != "asha2" || sess.CreatedAt.IsZero() {
		t.Errorf("after Update = %+v", sess)
	}

	ss.Delete(token)
	if _, ok := ss.Get(token); ok {
		t.Error("session survived Delete")
	}
	if ss.Update(token, sess) {
		t.Error("Update of deleted token returned true")
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	ss := NewSessionStore()
	now := time.Now()
	ss.now = func() time.Time { return now }
	token, _ := ss.Create(Session{UserID: 1, Role: "admin"})

	ss.now = func() time.Time { return now.Add(SessionTTL + time.Minute) }
	if _, ok := ss.Get(token); ok {
		t.Error("expired session still returned")
	}
}

func TestAuth_LoadsSessionFromCookie(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create(Session{UserID: 3, Username: "ravi", Role: "user"})

	var got Session
	var gotToken string
	h := Auth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetSessionFromContext(r.Context())
		gotToken, _ = GetTokenFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/user", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got.UserID != 3 || gotToken != token {
		t.Errorf("session = %+v token = %q", got, gotToken)
	}
}
