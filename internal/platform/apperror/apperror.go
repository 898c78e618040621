// Package apperror defines the error taxonomy shared by every pipeline
// stage: who may not act (authentication/authorization), what is missing
// (not found), what already happened (conflict), and what is out of range
// (invalid input). Handlers map these to HTTP status codes in one place.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindInternal covers storage and other infrastructure failures.
	KindInternal Kind = iota
	// KindAuthMissing means no staff identity or role was supplied.
	KindAuthMissing
	// KindAuthDenied means the role was supplied but is not permitted.
	KindAuthDenied
	// KindNotFound means a referenced entity does not exist.
	KindNotFound
	// KindConflict means a stage already executed, or its predecessor has not.
	KindConflict
	// KindInvalidInput means a value is outside its domain range.
	KindInvalidInput
)

// Error is a classified application error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func AuthMissing(msg string) *Error  { return &Error{Kind: KindAuthMissing, Msg: msg} }
func AuthDenied(msg string) *Error   { return &Error{Kind: KindAuthDenied, Msg: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Msg: msg} }
func InvalidInput(msg string) *Error { return &Error{Kind: KindInvalidInput, Msg: msg} }

// Internal wraps an infrastructure error.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// NotFoundf formats a NotFound error.
func NotFoundf(format string, args ...interface{}) *Error {
	return NotFound(fmt.Sprintf(format, args...))
}

// Conflictf formats a Conflict error.
func Conflictf(format string, args ...interface{}) *Error {
	return Conflict(fmt.Sprintf(format, args...))
}

// KindOf extracts the Kind from err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// HTTPStatus maps an error to its transport status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthMissing:
		return http.StatusUnauthorized
	case KindAuthDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err. Internal errors are
// flattened to a generic message so storage details never leak.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindInternal {
		return ae.Msg
	}
	return "internal server error"
}
