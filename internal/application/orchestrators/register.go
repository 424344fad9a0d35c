package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"usdh/internal/adapters/email"
	"usdh/internal/application/validation"
	"usdh/internal/domain/account"
)

// AccountStoreForRegister defines the store interface needed by Register.
type AccountStoreForRegister interface {
	Create(ctx context.Context, user account.User) (int64, error)
}

// RegisterInput carries the signup form.
type RegisterInput struct {
	Username string `form:"username" label:"Username" validate:"notblank"`
	Email    string `form:"email" label:"Email" validate:"notblank,emailfmt"`
	Password string `form:"password" label:"Password" validate:"notblank"`
	Confirm  string `form:"confirm_password" label:"Confirm password" validate:"notblank"`
	Role     string `form:"role" label:"Role" validate:"notblank,oneof=user admin"`
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	AccountStore AccountStoreForRegister
	Mailer       email.Sender // optional
	Now          func() time.Time
}

// ExecuteRegister validates the signup form and creates the account.
// PRE: none
// POST: On success the user row exists with a bcrypt hash; a welcome email was attempted
// INVARIANT: username and email are unique; the check and insert share one transaction
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (account.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if err := validation.Struct(input); err != nil {
		return account.User{}, err
	}
	if err := account.ValidateNewPassword(input.Password, input.Confirm); err != nil {
		return account.User{}, err
	}

	user := account.User{
		Username:  input.Username,
		Email:     input.Email,
		Role:      input.Role,
		CreatedAt: now(deps.Now),
	}
	if err := user.Validate(); err != nil {
		return account.User{}, err
	}
	if err := user.SetPassword(input.Password); err != nil {
		return account.User{}, err
	}

	id, err := deps.AccountStore.Create(ctx, user)
	if err != nil {
		slog.Info("auth_event", "event", "register_failed", "username", user.Username, "error", err)
		return account.User{}, err
	}
	user.ID = id
	slog.Info("auth_event", "event", "account_created", "user_id", id, "role", user.Role)

	sendWelcome(ctx, deps.Mailer, user)
	return user, nil
}

// sendWelcome delivers the welcome email. Failures are logged only.
func sendWelcome(ctx context.Context, mailer email.Sender, user account.User) {
	if mailer == nil {
		return
	}
	msg, err := email.Welcome(user.Username, user.Email, user.Role)
	if err != nil {
		slog.Error("email_event", "event", "welcome_render_failed", "user_id", user.ID, "error", err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := mailer.Send(ctx, msg); err != nil {
		slog.Warn("email_event", "event", "welcome_failed", "user_id", user.ID, "error", err)
		return
	}
	slog.Info("email_event", "event", "welcome_sent", "user_id", user.ID)
}

func now(fn func() time.Time) time.Time {
	if fn == nil {
		return time.Now()
	}
	return fn()
}
