package integration

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies which classification rule produced an Error
type Kind string

const (
	KindResourceMissing          Kind = "resource_missing"
	KindUpstreamUnexpectedStatus Kind = "upstream_unexpected_status"
	KindUpstreamClientError      Kind = "upstream_client_error"
	KindUpstreamServerError      Kind = "upstream_server_error"
	KindUpstreamUnreachable      Kind = "upstream_unreachable"
	KindInternalUnexpected       Kind = "internal_unexpected"
)

// Titles used in normalized errors
const (
	TitleNotFound = "Resource Not Found"
	TitleInternal = "Internal Server Error"
)

// Error is the normalized failure returned by every Client operation.
// StatusCode is always a valid HTTP status (100-599).
type Error struct {
	Kind       Kind
	StatusCode int
	Title      string
	Message    string
	Cause      error
}

// NewError builds an Error, replacing an out of range status with 500.
func NewError(kind Kind, status int, title, message string, cause error) *Error {
	return &Error{
		Kind:       kind,
		StatusCode: ValidStatus(status),
		Title:      title,
		Message:    message,
		Cause:      cause,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Title, e.Message)
}

// Unwrap returns the low level cause, if any
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ValidStatus returns status when it is a real HTTP status code, 500 otherwise.
func ValidStatus(status int) int {
	if status < 100 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
