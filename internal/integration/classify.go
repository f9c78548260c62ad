package integration

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonnyWalker81/audition/backend/pkg/jsonplaceholder"
)

// DefaultServiceName names the upstream in titles and messages
const DefaultServiceName = "JSONPlaceholder API"

// Outcome is everything one upstream call produced.
type Outcome struct {
	Response *jsonplaceholder.Response
	Err      error
}

type rule struct {
	name  string
	match func(Outcome) bool
	build func(o Outcome, service, resource string) *Error
}

// rules are evaluated in order; the last one always matches. A nil build
// result means the outcome is a success.
var rules = []rule{
	{
		name: "already-normalized",
		match: func(o Outcome) bool {
			var e *Error
			return errors.As(o.Err, &e)
		},
		build: func(o Outcome, _, _ string) *Error {
			var e *Error
			errors.As(o.Err, &e)
			return e
		},
	},
	{
		name: "upstream-client-error",
		match: func(o Outcome) bool {
			se, ok := statusError(o.Err)
			return ok && se.IsClientError()
		},
		build: func(o Outcome, service, resource string) *Error {
			se, _ := statusError(o.Err)
			return NewError(KindUpstreamClientError, se.StatusCode, TitleNotFound,
				fmt.Sprintf("Client error occurred while fetching %s from %s: %s", resource, service, o.Err.Error()),
				o.Err)
		},
	},
	{
		name: "upstream-server-error",
		match: func(o Outcome) bool {
			se, ok := statusError(o.Err)
			return ok && se.IsServerError()
		},
		build: func(o Outcome, service, resource string) *Error {
			se, _ := statusError(o.Err)
			return NewError(KindUpstreamServerError, se.StatusCode, fmt.Sprintf("%s Error", service),
				fmt.Sprintf("External service error occurred while fetching %s: %s", resource, o.Err.Error()),
				o.Err)
		},
	},
	{
		name: "upstream-unreachable",
		match: func(o Outcome) bool {
			var te *jsonplaceholder.TransportError
			return errors.As(o.Err, &te)
		},
		build: func(o Outcome, service, resource string) *Error {
			return NewError(KindUpstreamUnreachable, http.StatusServiceUnavailable,
				fmt.Sprintf("Backend service %s Unavailable", service),
				fmt.Sprintf("Unable to connect to %s while fetching %s: %s", service, resource, o.Err.Error()),
				o.Err)
		},
	},
	{
		name:  "unexpected-failure",
		match: func(o Outcome) bool { return o.Err != nil },
		build: func(o Outcome, _, resource string) *Error {
			return NewError(KindInternalUnexpected, http.StatusInternalServerError, TitleInternal,
				fmt.Sprintf("Unexpected error occurred while fetching %s: %s", resource, o.Err.Error()),
				o.Err)
		},
	},
	{
		name:  "missing-response",
		match: func(o Outcome) bool { return o.Response == nil },
		build: func(_ Outcome, _, resource string) *Error {
			return NewError(KindInternalUnexpected, http.StatusInternalServerError, TitleInternal,
				fmt.Sprintf("Unexpected error occurred while fetching %s: no response", resource),
				nil)
		},
	},
	{
		name:  "unexpected-status",
		match: func(o Outcome) bool { return !o.Response.IsSuccess() },
		build: func(o Outcome, _, resource string) *Error {
			return NewError(KindUpstreamUnexpectedStatus, o.Response.StatusCode, TitleInternal,
				fmt.Sprintf("Unexpected response status for %s", resource),
				nil)
		},
	},
	{
		name:  "empty-body",
		match: func(o Outcome) bool { return o.Response.Empty() },
		build: func(_ Outcome, _, resource string) *Error {
			return NewError(KindResourceMissing, http.StatusNotFound, TitleNotFound,
				fmt.Sprintf("No data found for %s", resource),
				nil)
		},
	},
	{
		name:  "success",
		match: func(Outcome) bool { return true },
		build: func(Outcome, string, string) *Error { return nil },
	},
}

// Classify maps an outcome onto a normalized error, or nil on success,
// using DefaultServiceName.
func Classify(o Outcome, resource string) *Error {
	return classify(o, DefaultServiceName, resource)
}

func classify(o Outcome, service, resource string) *Error {
	for _, r := range rules {
		if r.match(o) {
			return r.build(o, service, resource)
		}
	}
	// unreachable: the success rule always matches
	return nil
}

// ruleFor names the rule that handles o. Used for logging.
func ruleFor(o Outcome) string {
	for _, r := range rules {
		if r.match(o) {
			return r.name
		}
	}
	return ""
}

func statusError(err error) (*jsonplaceholder.StatusError, bool) {
	var se *jsonplaceholder.StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
