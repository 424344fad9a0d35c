package orchestrators

import (
	"context"
	"errors"
	"testing"

	"usdh/internal/domain/account"
)

// TestExecuteChangeUsername covers length, uniqueness and password checks.
func TestExecuteChangeUsername(t *testing.T) {
	store := newFakeAccountStore()
	asha := mustRegister(store, "asha", "asha@example.com", "secret1", account.RoleUser)
	mustRegister(store, "ravi", "ravi@example.com", "secret1", account.RoleUser)
	deps := ProfileDeps{AccountStore: store}
	ctx := context.Background()

	if _, err := ExecuteChangeUsername(ctx, ChangeUsernameInput{UserID: asha.ID, NewUsername: "ab"}, deps); err != account.ErrUsernameTooShort {
		t.Errorf("short name: err = %v", err)
	}
	if _, err := ExecuteChangeUsername(ctx, ChangeUsernameInput{UserID: asha.ID, NewUsername: "ravi"}, deps); !errors.Is(err, account.ErrUsernameTaken) {
		t.Errorf("taken name: err = %v", err)
	}
	if _, err := ExecuteChangeUsername(ctx, ChangeUsernameInput{UserID: asha.ID, NewUsername: "asha2", CurrentPassword: "nope"}, deps); err != account.ErrWrongPassword {
		t.Errorf("wrong password: err = %v", err)
	}

	u, err := ExecuteChangeUsername(ctx, ChangeUsernameInput{UserID: asha.ID, NewUsername: "asha_k", CurrentPassword: "secret1"}, deps)
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if u.Username != "asha_k" {
		t.Errorf("Username = %q", u.Username)
	}
	// Renaming to the current name is allowed.
	if _, err := ExecuteChangeUsername(ctx, ChangeUsernameInput{UserID: asha.ID, NewUsername: "asha_k"}, deps); err != nil {
		t.Errorf("self rename: %v", err)
	}
}

// TestExecuteChangeEmail covers format and uniqueness.
func TestExecuteChangeEmail(t *testing.T) {
	store := newFakeAccountStore()
	asha := mustRegister(store, "asha", "asha@example.com", "secret1", account.RoleUser)
	mustRegister(store, "ravi", "ravi@example.com", "secret1", account.RoleUser)
	deps := ProfileDeps{AccountStore: store}
	ctx := context.Background()

	if _, err := ExecuteChangeEmail(ctx, ChangeEmailInput{UserID: asha.ID, NewEmail: "nope"}, deps); err != account.ErrInvalidEmail {
		t.Errorf("bad email: err = %v", err)
	}
	if _, err := ExecuteChangeEmail(ctx, ChangeEmailInput{UserID: asha.ID, NewEmail: "ravi@example.com"}, deps); !errors.Is(err, account.ErrEmailTaken) {
		t.Errorf("taken email: err = %v", err)
	}
	u, err := ExecuteChangeEmail(ctx, ChangeEmailInput{UserID: asha.ID, NewEmail: "asha@example.org"}, deps)
	if err != nil || u.Email != "asha@example.org" {
		t.Errorf("change email: u=%+v err=%v", u, err)
	}
}

// TestExecuteChangePassword covers the password change rules.
func TestExecuteChangePassword(t *testing.T) {
	store := newFakeAccountStore()
	asha := mustRegister(store, "asha", "asha@example.com", "secret1", account.RoleUser)
	deps := ProfileDeps{AccountStore: store}
	ctx := context.Background()

	tests := []struct {
		name    string
		input   ChangePasswordInput
		wantErr error
	}{
		{"missing fields", ChangePasswordInput{UserID: asha.ID, CurrentPassword: "secret1"}, errPasswordFieldsRequired},
		{"wrong current", ChangePasswordInput{UserID: asha.ID, CurrentPassword: "nope", NewPassword: "newpass", Confirm: "newpass"}, account.ErrWrongPassword},
		{"mismatch", ChangePasswordInput{UserID: asha.ID, CurrentPassword: "secret1", NewPassword: "newpass", Confirm: "newpas"}, account.ErrPasswordMismatch},
		{"too short", ChangePasswordInput{UserID: asha.ID, CurrentPassword: "secret1", NewPassword: "abc", Confirm: "abc"}, account.ErrPasswordTooShort},
		{"unknown user", ChangePasswordInput{UserID: 99, CurrentPassword: "secret1", NewPassword: "newpass", Confirm: "newpass"}, account.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ExecuteChangePassword(ctx, tt.input, deps); err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := ExecuteChangePassword(ctx, ChangePasswordInput{UserID: asha.ID, CurrentPassword: "secret1", NewPassword: "newpass", Confirm: "newpass"}, deps); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := ExecuteLogin(ctx, LoginInput{Username: "asha", Password: "newpass", Role: account.RoleUser}, LoginDeps{AccountStore: store}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}
