package account

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"usdh/internal/domain/apperr"
)

// Field limits.
const (
	MaxEmailLength    = 254
	MinPasswordLength = 6
	MaxPasswordBytes  = 72 // bcrypt ignores input past this
	MinUsernameLength = 3
	MaxUsernameLength = 64
	passwordHashCost  = 12
)

// Role constants
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleUser, RoleAdmin}

// EmailPattern is the address format accepted at signup and on profile edits.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Domain errors
var (
	ErrEmptyUsername    = apperr.Validation("username is required")
	ErrUsernameTooShort = apperr.Validation("username must be at least 3 characters")
	ErrUsernameTooLong  = apperr.Validation("username cannot exceed 64 characters")
	ErrEmptyEmail       = apperr.Validation("email is required")
	ErrInvalidEmail     = apperr.Validation("please enter a valid email address")
	ErrInvalidRole      = apperr.Validation("role must be one of: user, admin")
	ErrEmptyPassword    = apperr.Validation("password is required")
	ErrPasswordTooShort = apperr.Validation("password must be at least 6 characters")
	ErrPasswordTooLong  = apperr.Validation("password must be at most 72 bytes")
	ErrPasswordMismatch = apperr.Validation("passwords do not match")
	ErrWrongPassword    = apperr.Auth("current password is incorrect")
	ErrUsernameTaken    = apperr.Duplicate("username already exists")
	ErrEmailTaken       = apperr.Duplicate("email already registered")
	ErrNotFound         = apperr.NotFound("user not found")
)

// User holds state for the User concept.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, a validation error otherwise
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if !IsValidRole(u.Role) {
		return ErrInvalidRole
	}
	return nil
}

// ValidateEmail checks presence, length and format of an address.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmptyEmail
	}
	if len(email) > MaxEmailLength || !EmailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateNewUsername applies the stricter rule used when renaming.
func ValidateNewUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}
	if len(username) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	if len(username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	return nil
}

// ValidateNewPassword checks a password and its confirmation.
// PRE: none
// POST: Returns nil if password fits bcrypt's length limits and matches confirm
func ValidateNewPassword(password, confirm string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is 6 to 72 bytes
// POST: PasswordHash is set to bcrypt hash
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(plaintext) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordHashCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// IsAdmin returns true if the user has the admin role.
// INVARIANT: User fields are not mutated
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsValidRole reports whether role is one of ValidRoles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
