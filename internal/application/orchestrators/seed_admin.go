package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"usdh/internal/domain/account"
)

// AccountStoreForSeed defines the store interface needed by SeedAdmin.
type AccountStoreForSeed interface {
	CountByRole(ctx context.Context, role string) (int, error)
	Create(ctx context.Context, user account.User) (int64, error)
}

// SeedAdminInput carries the configured first admin.
type SeedAdminInput struct {
	Username string
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed
	Now          func() time.Time
}

// ExecuteSeedAdmin creates the configured admin when no admin exists yet.
// An empty username or password skips seeding.
// PRE: none
// POST: At least one admin exists if credentials were supplied; returns true when one was created
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) (bool, error) {
	if input.Username == "" || input.Password == "" {
		return false, nil
	}
	n, err := deps.AccountStore.CountByRole(ctx, account.RoleAdmin)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	user := account.User{
		Username:  input.Username,
		Email:     input.Email,
		Role:      account.RoleAdmin,
		CreatedAt: now(deps.Now),
	}
	if err := user.Validate(); err != nil {
		return false, err
	}
	if err := user.SetPassword(input.Password); err != nil {
		return false, err
	}
	id, err := deps.AccountStore.Create(ctx, user)
	if err != nil {
		return false, err
	}
	slog.Info("auth_event", "event", "admin_seeded", "user_id", id, "username", user.Username)
	return true, nil
}
