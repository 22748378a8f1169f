// Package apierr defines the error kinds returned by pmhub's core services.
//
// Services return *Error values; the HTTP layer maps the Kind to a status
// code and renders Message. Wrapped causes are for logs only and are never
// sent to clients.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation"
	KindDataAccess   Kind = "data_access"
	KindUnauthorized Kind = "unauthorized"
)

// Error is a classified error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports an absent or inactive entity.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Forbidden reports that the caller lacks permission on an existing entity.
func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }

// Conflict reports a uniqueness violation such as a duplicate team member.
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Validation reports a malformed or out-of-range input field.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// Unauthorized reports a missing or invalid caller identity.
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// DataAccess wraps a store failure. msg is what the client sees; err is logged.
func DataAccess(msg string, err error) *Error {
	return &Error{Kind: KindDataAccess, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or KindDataAccess for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDataAccess
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == k
}
