package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"usdh/internal/domain/account"
	"usdh/internal/domain/apperr"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByUsername(ctx context.Context, username string) (account.User, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
	Role     string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
}

// ErrInvalidCredentials is returned for every login failure.
var ErrInvalidCredentials = apperr.Auth("Invalid credentials")

// ExecuteLogin checks credentials and the requested role.
// PRE: none
// POST: Returns the user on success, ErrInvalidCredentials otherwise
// INVARIANT: unknown user, wrong password and wrong role are indistinguishable to the caller
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (account.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" || input.Role == "" {
		return account.User{}, ErrInvalidCredentials
	}

	user, err := deps.AccountStore.GetByUsername(ctx, username)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			slog.Info("auth_event", "event", "login_failed", "username", username, "reason", "not_found")
			return account.User{}, ErrInvalidCredentials
		}
		return account.User{}, err
	}

	if err := user.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", username, "reason", "wrong_password")
		return account.User{}, ErrInvalidCredentials
	}

	if user.Role != input.Role {
		slog.Info("auth_event", "event", "login_failed", "username", username, "reason", "wrong_role")
		return account.User{}, ErrInvalidCredentials
	}

	slog.Info("auth_event", "event", "login_success", "user_id", user.ID, "role", user.Role)
	return user, nil
}
