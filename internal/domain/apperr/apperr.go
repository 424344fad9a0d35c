// Package apperr defines the error taxonomy shared by every layer.
//
// Every error that reaches the HTTP layer is classified into one Kind so the
// page can show a readable status line instead of a raw error string.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindDuplicate
	KindAuth
	KindNotFound
	KindStorage
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is a classified error with a user-facing message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrDuplicate  = &Error{Kind: KindDuplicate}
	ErrAuth       = &Error{Kind: KindAuth}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrStorage    = &Error{Kind: KindStorage}
)

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the bare sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Validation reports a missing or malformed input field.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Duplicate reports a uniqueness collision.
func Duplicate(msg string) error {
	return &Error{Kind: KindDuplicate, Msg: msg}
}

// Auth reports bad credentials or a missing session.
func Auth(msg string) error {
	return &Error{Kind: KindAuth, Msg: msg}
}

// NotFound reports a missing row or file.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Storage wraps an unexpected database or filesystem failure.
func Storage(op string, err error) error {
	return &Error{Kind: KindStorage, Msg: op, Err: err}
}

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns a message safe to show to the user.
// Storage and unclassified errors collapse to a generic message.
func Message(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "Something went wrong. Please try again."
	}
	switch e.Kind {
	case KindStorage, KindUnknown:
		return "Something went wrong. Please try again."
	}
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.String()
}
