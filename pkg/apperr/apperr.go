// Package apperr is the error taxonomy shared by services and handlers.
//
// Services return *Error values; the HTTP layer renders them through a single
// responder (ctx.Context.Fail). Anything that is not an *Error is treated as
// an internal failure.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Error carries an HTTP status code and a client-facing message.
type Error struct {
	Code    int
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Cause satisfies github.com/pkg/errors' causer interface.
func (e *Error) Cause() error { return e.cause }

// New builds an error with an explicit status code.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds an error with an explicit status code that remembers cause.
func Wrap(cause error, code int, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func Authentication(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Forbidden"
	}
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Not found"
	}
	return New(http.StatusNotFound, message)
}

// Validation is a 400. fields may be nil.
func Validation(message string, fields map[string]string) *Error {
	if message == "" {
		message = "Validation failed"
	}
	return &Error{Code: http.StatusBadRequest, Message: message, Fields: fields}
}

// InvalidOperation is a 400 for requests that are well-formed but not allowed
// in the current state (a category becoming its own ancestor).
func InvalidOperation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// TransactionFailed hides the failing step of a multi-document write behind
// one generic 500. The cause is kept for logging.
func TransactionFailed(operation string, cause error) *Error {
	return &Error{
		Code:    http.StatusInternalServerError,
		Message: operation + " failed",
		cause:   cause,
	}
}

// From converts any error into an *Error. Unknown errors become a 500.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: http.StatusInternalServerError, Message: "Internal Server Error", cause: err}
}

// Code returns the status code carried by err, or 500.
func Code(err error) int {
	if e := From(err); e != nil {
		return e.Code
	}
	return http.StatusOK
}

// Is reports whether err carries the given status code.
func Is(err error, code int) bool {
	return err != nil && Code(err) == code
}
