package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a business failure.
type Code string

const (
	CodeValidation      Code = "validation"
	CodeNotFound        Code = "not_found"
	CodeDuplicate       Code = "duplicate"
	CodeInvalidArgument Code = "invalid_argument"
	CodeUnauthorized    Code = "unauthorized"
	CodeForbidden       Code = "forbidden"
	CodeInternal        Code = "internal"
)

// Error is the typed failure surfaced by every service operation.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with a fixed message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a coded error.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return Newf(CodeValidation, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return Newf(CodeNotFound, format, args...)
}

func Duplicate(format string, args ...interface{}) *Error {
	return Newf(CodeDuplicate, format, args...)
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func Unauthorized(format string, args ...interface{}) *Error {
	return Newf(CodeUnauthorized, format, args...)
}

func Forbidden(format string, args ...interface{}) *Error {
	return Newf(CodeForbidden, format, args...)
}

// CodeOf extracts the failure code, defaulting to internal for plain errors.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// Status maps a failure code to its HTTP status.
func Status(err error) int {
	switch CodeOf(err) {
	case CodeValidation, CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDuplicate:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
