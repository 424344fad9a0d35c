package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"usdh/internal/domain/account"
	"usdh/internal/domain/apperr"
)

// AccountStoreForProfile defines the store interface needed by the profile actions.
type AccountStoreForProfile interface {
	GetByID(ctx context.Context, id int64) (account.User, error)
	UpdateUsername(ctx context.Context, id int64, username string) error
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

// ProfileDeps holds dependencies for the profile actions.
type ProfileDeps struct {
	AccountStore AccountStoreForProfile
}

// ChangeUsernameInput carries input for ChangeUsername.
type ChangeUsernameInput struct {
	UserID          int64
	NewUsername     string
	CurrentPassword string // verified when non-empty
}

// ChangeEmailInput carries input for ChangeEmail.
type ChangeEmailInput struct {
	UserID          int64
	NewEmail        string
	CurrentPassword string // verified when non-empty
}

// ChangePasswordInput carries input for ChangePassword.
type ChangePasswordInput struct {
	UserID          int64
	CurrentPassword string
	NewPassword     string
	Confirm         string
}

var errPasswordFieldsRequired = apperr.Validation("all password fields are required")

// ExecuteChangeUsername renames the account.
// PRE: UserID identifies an existing user
// POST: Username updated; the returned user carries the new name
// INVARIANT: username stays unique among other users
func ExecuteChangeUsername(ctx context.Context, input ChangeUsernameInput, deps ProfileDeps) (account.User, error) {
	name := strings.TrimSpace(input.NewUsername)
	if err := account.ValidateNewUsername(name); err != nil {
		return account.User{}, err
	}
	user, err := verifiedUser(ctx, deps.AccountStore, input.UserID, input.CurrentPassword)
	if err != nil {
		return account.User{}, err
	}
	if err := deps.AccountStore.UpdateUsername(ctx, user.ID, name); err != nil {
		return account.User{}, err
	}
	slog.Info("auth_event", "event", "username_changed", "user_id", user.ID)
	user.Username = name
	return user, nil
}

// ExecuteChangeEmail updates the account email.
// PRE: UserID identifies an existing user
// POST: Email updated; the returned user carries the new address
// INVARIANT: email stays unique among other users
func ExecuteChangeEmail(ctx context.Context, input ChangeEmailInput, deps ProfileDeps) (account.User, error) {
	addr := strings.TrimSpace(input.NewEmail)
	if err := account.ValidateEmail(addr); err != nil {
		return account.User{}, err
	}
	user, err := verifiedUser(ctx, deps.AccountStore, input.UserID, input.CurrentPassword)
	if err != nil {
		return account.User{}, err
	}
	if err := deps.AccountStore.UpdateEmail(ctx, user.ID, addr); err != nil {
		return account.User{}, err
	}
	slog.Info("auth_event", "event", "email_changed", "user_id", user.ID)
	user.Email = addr
	return user, nil
}

// ExecuteChangePassword verifies the current password and stores a new hash.
// PRE: UserID identifies an existing user
// POST: PasswordHash replaced
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ProfileDeps) error {
	if input.CurrentPassword == "" || input.NewPassword == "" || input.Confirm == "" {
		return errPasswordFieldsRequired
	}
	user, err := deps.AccountStore.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := user.CheckPassword(input.CurrentPassword); err != nil {
		slog.Info("auth_event", "event", "password_change_failed", "user_id", user.ID, "reason", "wrong_password")
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
	slog.Info("auth_event", "event", "password_changed", "user_id", user.ID)
	return nil
}

func verifiedUser(ctx context.Context, store AccountStoreForProfile, id int64, password string) (account.User, error) {
	user, err := store.GetByID(ctx, id)
	if err != nil {
		return account.User{}, err
	}
	if password != "" {
		if err := user.CheckPassword(password); err != nil {
			return account.User{}, err
		}
	}
	return user, nil
}
