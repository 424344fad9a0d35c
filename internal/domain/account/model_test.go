package account_test

import (
	"errors"
	"strings"
	"testing"

	"usdh/internal/domain/account"
	"usdh/internal/domain/apperr"
)

// TestUser_Validate tests validation of User.
func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    account.User
		wantErr error
	}{
		{
			name:    "valid user",
			user:    account.User{Username: "asha", Email: "asha@example.com", Role: account.RoleUser},
			wantErr: nil,
		},
		{
			name:    "valid admin",
			user:    account.User{Username: "root", Email: "root@example.org", Role: account.RoleAdmin},
			wantErr: nil,
		},
		{
			name:    "missing username",
			user:    account.User{Username: "  ", Email: "a@example.com", Role: account.RoleUser},
			wantErr: account.ErrEmptyUsername,
		},
		{
			name:    "missing email",
			user:    account.User{Username: "asha", Role: account.RoleUser},
			wantErr: account.ErrEmptyEmail,
		},
		{
			name:    "email without tld",
			user:    account.User{Username: "asha", Email: "asha@example", Role: account.RoleUser},
			wantErr: account.ErrInvalidEmail,
		},
		{
			name:    "email with one letter tld",
			user:    account.User{Username: "asha", Email: "asha@example.c", Role: account.RoleUser},
			wantErr: account.ErrInvalidEmail,
		},
		{
			name:    "unknown role",
			user:    account.User{Username: "asha", Email: "asha@example.com", Role: "coach"},
			wantErr: account.ErrInvalidRole,
		},
		{
			name:    "username too long",
			user:    account.User{Username: strings.Repeat("a", 65), Email: "asha@example.com", Role: account.RoleUser},
			wantErr: account.ErrUsernameTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidateNewPassword covers the signup password rules.
func TestValidateNewPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		confirm  string
		wantErr  error
	}{
		{"ok", "secret1", "secret1", nil},
		{"exactly six", "abcdef", "abcdef", nil},
		{"empty", "", "", account.ErrEmptyPassword},
		{"mismatch", "secret1", "secret2", account.ErrPasswordMismatch},
		{"too short", "abc", "abc", account.ErrPasswordTooShort},
		{"bcrypt limit", strings.Repeat("p", 72), strings.Repeat("p", 72), nil},
		{"past bcrypt limit", strings.Repeat("p", 73), strings.Repeat("p", 73), account.ErrPasswordTooLong},
		{"multibyte past limit", strings.Repeat("é", 37), strings.Repeat("é", 37), account.ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := account.ValidateNewPassword(tt.password, tt.confirm); err != tt.wantErr {
				t.Errorf("ValidateNewPassword() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestValidateNewUsername covers the rename rule.
func TestValidateNewUsername(t *testing.T) {
	if err := account.ValidateNewUsername("ab"); err != account.ErrUsernameTooShort {
		t.Errorf("expected ErrUsernameTooShort, got %v", err)
	}
	if err := account.ValidateNewUsername("abc"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

// TestUser_Password verifies bcrypt hashing round trip.
func TestUser_Password(t *testing.T) {
	u := account.User{Username: "asha", Email: "asha@example.com", Role: account.RoleUser}
	if err := u.SetPassword("hunter22"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "hunter22" {
		t.Fatal("expected a bcrypt hash to be stored")
	}
	if err := u.CheckPassword("hunter22"); err != nil {
		t.Errorf("CheckPassword(correct) = %v", err)
	}
	err := u.CheckPassword("hunter23")
	if err == nil {
		t.Fatal("CheckPassword(wrong) should fail")
	}
	if !errors.Is(err, apperr.ErrAuth) {
		t.Errorf("expected auth error, got %v", err)
	}
}

// TestUser_SetPassword_TooShort verifies the minimum length.
func TestUser_SetPassword_TooShort(t *testing.T) {
	u := account.User{}
	if err := u.SetPassword("12345"); err != account.ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}

// TestUser_SetPassword_TooLong rejects input bcrypt would refuse.
func TestUser_SetPassword_TooLong(t *testing.T) {
	u := account.User{}
	err := u.SetPassword(strings.Repeat("x", 80))
	if err != account.ErrPasswordTooLong {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
}
