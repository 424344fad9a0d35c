package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"usdh/internal/domain/account"
)

// AccountStoreForReset defines the store interface needed by ResetPassword.
type AccountStoreForReset interface {
	GetByUsername(ctx context.Context, username string) (account.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

// ResetPasswordInput carries input for ResetPassword.
type ResetPasswordInput struct {
	Username    string
	NewPassword string
	Confirm     string
}

// ResetPasswordDeps holds dependencies for ResetPassword.
type ResetPasswordDeps struct {
	AccountStore AccountStoreForReset
}

// ExecuteResetPassword sets a new password without the current one.
// Operator-only: it is reachable from cmd/admin, never from a web route.
// PRE: none
// POST: PasswordHash replaced, or the store's NotFound error for an unknown username
func ExecuteResetPassword(ctx context.Context, input ResetPasswordInput, deps ResetPasswordDeps) error {
	user, err := deps.AccountStore.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		return err
	}
	if err := account.ValidateNewPassword(input.NewPassword, input.Confirm); err != nil {
		return err
	}
	if err := user.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := deps.AccountStore.UpdatePassword(ctx, user.ID, user.PasswordHash); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "password_reset", "user_id", user.ID)
	return nil
}
