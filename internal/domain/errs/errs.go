// Package errs defines the failure kinds shared by the domain services.
// Handlers translate a kind into an HTTP status; nothing below them knows
// about HTTP.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "internal"
}

var (
	ErrValidation   = &Error{Kind: KindValidation, Msg: "invalid input"}
	ErrNotFound     = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrConflict     = &Error{Kind: KindConflict, Msg: "conflict"}
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Msg: "unauthorized"}
	ErrInternal     = &Error{Kind: KindInternal, Msg: "internal error"}

	// ErrAlreadyOpened is a conflict: the card instance was revealed before.
	ErrAlreadyOpened = &Error{Kind: KindConflict, Msg: "card has already been opened"}
)

type Error struct {
	Kind  Kind
	Msg   string
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind and message, so wrapped sentinels
// compare equal to the package level values.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Msg == "" || t == ErrValidation || t == ErrNotFound || t == ErrConflict ||
		t == ErrUnauthorized || t == ErrInternal {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

var sentinels = []*Error{ErrValidation, ErrNotFound, ErrConflict, ErrUnauthorized}

// KindOf returns the kind of the first *Error in err's chain, falling back to
// any error that reports itself as one of the sentinels. Everything else is
// internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Kind
		}
	}
	return KindInternal
}

// Message returns the user facing text for err. Internal errors never leak
// their cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	if KindOf(err) != KindInternal {
		return err.Error()
	}
	return "Internal server error"
}
