package jsonplaceholder

import (
	"fmt"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of an upstream error body is echoed in Error()
const maxErrorBody = 256

// StatusError is returned when the upstream answers with a 4xx or 5xx status.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return status
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("%s: %s", status, body)
}

// IsClientError reports a 4xx status
func (e *StatusError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError reports a 5xx (or higher) status
func (e *StatusError) IsServerError() bool {
	return e.StatusCode >= 500
}

// IsNotFound reports a 404 status
func (e *StatusError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// TransportError wraps a network level failure: DNS, refused connection,
// timeout, or a body that could not be read.
type TransportError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("I/O error on GET request for %q: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a successful response body is not valid JSON
// for the requested type.
type DecodeError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode response from %q: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
