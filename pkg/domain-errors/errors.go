// Package dErrors defines the coded error vocabulary shared by all modules.
//
// Services wrap failures with a Code so transports can translate them without
// inspecting message strings. Validation failures are deterministic and use
// CodeInvalidInput; processing failures use CodeInternal and carry the failing
// operation name in their message, never raw secret material.
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code categorizes a domain error for transport translation.
type Code string

const (
	// CodeInvalidInput marks deterministic validation failures of caller input.
	CodeInvalidInput Code = "invalid_input"
	// CodeBadRequest marks malformed requests (undecodable body, wrong shape).
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks lookups with no matching record.
	CodeNotFound Code = "not_found"
	// CodeUnauthorized marks missing or rejected caller identity.
	CodeUnauthorized Code = "unauthorized"
	// CodeInternal marks processing failures. The HTTP layer hides the
	// description for these.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error, optionally wrapping a cause.
type Error struct {
	Code    Code
	Message string
	Err     error

	// value retains the rejected input for programmatic inspection. It is
	// unexported and excluded from Error() so it can never reach a message,
	// log line, or HTTP envelope by accident.
	value string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewWithValue creates a coded error that carries the rejected input.
// The value is retrievable only through ValueOf.
func NewWithValue(code Code, message, value string) error {
	return &Error{Code: code, Message: message, value: value}
}

// ValueOf returns the rejected input carried by err, or "" when none was
// attached. Callers must mask the value before logging it.
func ValueOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.value
	}
	return ""
}

// Wrap attaches a code and message to an underlying error. A nil err returns nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the code from err. Errors outside the taxonomy are treated
// as internal failures, never dropped.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
