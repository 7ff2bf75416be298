package siteask

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// EINVALID means the caller supplied bad input and should fix it before
// retrying. EUNAVAILABLE means a dependency (network, browser, remote site)
// failed in a way that may be transient. The distinction lets callers
// separate "fix your input" from "try again later".
const (
	ECONFLICT    = "conflict"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("siteask error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the application error wrapped in err, or
// EINTERNAL for non-application errors. Returns the empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the application error wrapped in err.
// Non-application errors map to a generic message so internal details are
// not shown to users. Returns the empty string for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
