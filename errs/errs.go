// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeForbidden          Code = "FORBIDDEN"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeInvalid            Code = "INVALID"
	CodeConflict           Code = "CONFLICT"
	CodeCodeSpaceExhausted Code = "CODE_SPACE_EXHAUSTED"
	CodeLastAdmin          Code = "LAST_ADMIN"
	CodeCeremonyComplete   Code = "CEREMONY_COMPLETE"
	CodeInternal           Code = "INTERNAL"
)

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeInvalid:
		return http.StatusBadRequest
	case CodeConflict, CodeLastAdmin, CodeCeremonyComplete:
		return http.StatusConflict
	case CodeCodeSpaceExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error carrying a code, a user-facing message and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error with the same code, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int { return e.Code.HTTPStatus() }

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// Sentinels for errors.Is.
var (
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrForbidden          = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrUnauthorized       = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrInvalid            = &Error{Code: CodeInvalid, Message: "invalid input"}
	ErrConflict           = &Error{Code: CodeConflict, Message: "conflict"}
	ErrCodeSpaceExhausted = &Error{Code: CodeCodeSpaceExhausted, Message: "short code space exhausted"}
	ErrLastAdmin          = &Error{Code: CodeLastAdmin, Message: "cannot remove the last administrator"}
	ErrCeremonyComplete   = &Error{Code: CodeCeremonyComplete, Message: "ceremony already complete"}
	ErrInternal           = &Error{Code: CodeInternal, Message: "internal error"}
)

func NotFound(msg string) *Error     { return &Error{Code: CodeNotFound, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Code: CodeForbidden, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Code: CodeUnauthorized, Message: msg} }
func Invalid(msg string) *Error      { return &Error{Code: CodeInvalid, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Code: CodeConflict, Message: msg} }
func LastAdmin(msg string) *Error    { return &Error{Code: CodeLastAdmin, Message: msg} }

// Invalidf creates an invalid-input error with a formatted message.
func Invalidf(format string, args ...any) *Error {
	return &Error{Code: CodeInvalid, Message: fmt.Sprintf(format, args...)}
}

// InvalidWithDetails creates an invalid-input error with per-field details.
func InvalidWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeInvalid, Message: msg, Details: details}
}

// Wrap wraps err with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
