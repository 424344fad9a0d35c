package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"usdh/internal/adapters/http/middleware"
	"usdh/internal/application/orchestrators"
	"usdh/internal/domain/account"
)

// handleHome sends visitors to their dashboard, or to the login page.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, dashboardPath(sess.Role), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handleLoginPage renders GET /login
func handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, dashboardPath(sess.Role), http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "login.html", map[string]any{
		"Roles": account.ValidRoles,
		"Role":  account.RoleUser,
	})
}

// handleLogin handles POST /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.LoginInput{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
	}
	user, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{AccountStore: stores.Accounts})
	if err != nil {
		renderTemplate(w, r, "login.html", map[string]any{
			"Roles":    account.ValidRoles,
			"Role":     input.Role,
			"Username": input.Username,
			"Status":   failure(err),
		})
		return
	}
	if err := startSession(w, r, user); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, dashboardPath(user.Role), http.StatusSeeOther)
}

// handleSignupPage renders GET /signup
func handleSignupPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "signup.html", map[string]any{
		"Roles": account.ValidRoles,
		"Form":  orchestrators.RegisterInput{Role: account.RoleUser},
	})
}

// handleSignup handles POST /signup. A new account is signed in straight away.
func handleSignup(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.RegisterInput
	err := bindForm(r, &input)
	var user account.User
	if err == nil {
		user, err = orchestrators.ExecuteRegister(r.Context(), input, orchestrators.RegisterDeps{
			AccountStore: stores.Accounts,
			Mailer:       services.Mailer,
			Now:          timeNow,
		})
	}
	if err != nil {
		input.Password, input.Confirm = "", ""
		renderTemplate(w, r, "signup.html", map[string]any{
			"Roles":  account.ValidRoles,
			"Form":   input,
			"Status": failure(err),
		})
		return
	}
	if err := startSession(w, r, user); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, dashboardPath(user.Role), http.StatusSeeOther)
}

// handleLogout clears the session on GET or POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.GetTokenFromContext(r.Context()); ok {
		sess := currentSession(r)
		sessions.Delete(token)
		slog.Info("auth_event", "event", "logout", "user_id", sess.UserID)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

// startSession replaces any existing session with one for user.
func startSession(w http.ResponseWriter, r *http.Request, user account.User) error {
	if old, ok := middleware.GetTokenFromContext(r.Context()); ok {
		sessions.Delete(old)
	}
	token, err := sessions.Create(middleware.Session{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(w, token)
	return nil
}

// profileBase is the profile URL prefix for the session's role.
func profileBase(sess middleware.Session) string {
	if sess.IsAdmin() {
		return "/admin/profile"
	}
	return "/profile"
}

// handleProfilePage renders GET /profile and /admin/profile
func handleProfilePage(w http.ResponseWriter, r *http.Request) {
	renderProfile(w, r, nil)
}

func renderProfile(w http.ResponseWriter, r *http.Request, status *Status) {
	sess := currentSession(r)
	user, err := stores.Accounts.GetByID(r.Context(), sess.UserID)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "profile.html", map[string]any{
		"User":   user,
		"Base":   profileBase(sess),
		"Status": status,
	})
}

// handleProfileUpdate handles POST /profile/{username|email|password}
func handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess := currentSession(r)
	deps := orchestrators.ProfileDeps{AccountStore: stores.Accounts}
	ctx := r.Context()

	var status *Status
	switch chi.URLParam(r, "field") {
	case "username":
		user, err := orchestrators.ExecuteChangeUsername(ctx, orchestrators.ChangeUsernameInput{
			UserID:          sess.UserID,
			NewUsername:     r.FormValue("username"),
			CurrentPassword: r.FormValue("current_password"),
		}, deps)
		if err != nil {
			status = failure(err)
			break
		}
		refreshSession(r, user)
		status = success("Username updated.")
	case "email":
		user, err := orchestrators.ExecuteChangeEmail(ctx, orchestrators.ChangeEmailInput{
			UserID:          sess.UserID,
			NewEmail:        r.FormValue("email"),
			CurrentPassword: r.FormValue("current_password"),
		}, deps)
		if err != nil {
			status = failure(err)
			break
		}
		refreshSession(r, user)
		status = success("Email updated.")
	case "password":
		err := orchestrators.ExecuteChangePassword(ctx, orchestrators.ChangePasswordInput{
			UserID:          sess.UserID,
			CurrentPassword: r.FormValue("current_password"),
			NewPassword:     r.FormValue("new_password"),
			Confirm:         r.FormValue("confirm_password"),
		}, deps)
		if err != nil {
			status = failure(err)
			break
		}
		status = success("Password changed.")
	default:
		http.Redirect(w, r, profileBase(sess), http.StatusSeeOther)
		return
	}

	// the layout reads the identity from the request context
	sess, _ = sessions.Get(tokenOf(r))
	if sess.UserID != 0 {
		r = r.WithContext(middleware.ContextWithSession(r.Context(), sess))
	}
	renderProfile(w, r, status)
}

// refreshSession copies changed account fields into the stored session.
func refreshSession(r *http.Request, user account.User) {
	token := tokenOf(r)
	if token == "" {
		return
	}
	sess := currentSession(r)
	sess.Username = user.Username
	sess.Email = user.Email
	sessions.Update(token, sess)
}

func tokenOf(r *http.Request) string {
	token, _ := middleware.GetTokenFromContext(r.Context())
	return token
}
