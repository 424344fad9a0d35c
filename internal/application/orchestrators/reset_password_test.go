package orchestrators

import (
	"context"
	"errors"
	"testing"

	"usdh/internal/domain/account"
	"usdh/internal/domain/apperr"
)

// TestExecuteResetPassword covers unknown users, mismatched confirmation and success.
func TestExecuteResetPassword(t *testing.T) {
	store := newFakeAccountStore()
	asha := mustRegister(store, "asha", "asha@example.com", "secret1", account.RoleAdmin)
	deps := ResetPasswordDeps{AccountStore: store}
	ctx := context.Background()

	err := ExecuteResetPassword(ctx, ResetPasswordInput{Username: "ghost", NewPassword: "newpass1", Confirm: "newpass1"}, deps)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown user: err = %v", err)
	}
	if err := ExecuteResetPassword(ctx, ResetPasswordInput{Username: "asha", NewPassword: "newpass1", Confirm: "newpass2"}, deps); err == nil {
		t.Error("mismatched confirmation accepted")
	}

	if err := ExecuteResetPassword(ctx, ResetPasswordInput{Username: " asha ", NewPassword: "newpass1", Confirm: "newpass1"}, deps); err != nil {
		t.Fatalf("reset: %v", err)
	}
	u, _ := store.GetByID(ctx, asha.ID)
	if err := u.CheckPassword("newpass1"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if err := u.CheckPassword("secret1"); err == nil {
		t.Error("old password still accepted")
	}
}
