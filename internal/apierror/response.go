package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/audition/backend/internal/integration"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// RequestIDKey is the gin context key holding the request correlation ID.
const RequestIDKey = "request_id"

// WriteProblem writes a ProblemDetails response to the gin context.
// It sets the correct Content-Type header and, if RetryAfter is set,
// also sets the Retry-After header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	problem.Status = integration.ValidStatus(problem.Status)
	c.Header("Content-Type", ContentTypeProblemJSON)

	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}

	c.JSON(problem.Status, problem)
}

// AbortWithProblem writes the problem and stops the handler chain.
func AbortWithProblem(c *gin.Context, problem *ProblemDetails) {
	WriteProblem(c, problem)
	c.Abort()
}

// GetRequestID extracts the request ID from the gin context.
// Returns empty string if not found.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	if c.Request == nil {
		return ""
	}
	return c.GetHeader("X-Request-ID")
}

// FromError converts an error returned by the service layer into a problem.
// Normalized integration errors keep their status, title and message. Any
// other error becomes a generic 500 so internal details never leak.
func FromError(requestID, instance string, err error) *ProblemDetails {
	var problem *ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	nerr, ok := integration.AsError(err)
	if !ok {
		return NewInternalError(requestID).WithInstance(instance)
	}

	return &ProblemDetails{
		Type:        typeForKind(nerr.Kind),
		Title:       nerr.Title,
		Status:      integration.ValidStatus(nerr.StatusCode),
		Detail:      nerr.Message,
		Instance:    instance,
		RequestID:   requestID,
		UserMessage: userMessageForKind(nerr.Kind),
	}
}

func typeForKind(kind integration.Kind) string {
	switch kind {
	case integration.KindResourceMissing:
		return TypeNotFound
	case integration.KindUpstreamClientError:
		return TypeUpstreamClient
	case integration.KindUpstreamServerError, integration.KindUpstreamUnexpectedStatus:
		return TypeUpstream
	case integration.KindUpstreamUnreachable:
		return TypeUnavailable
	default:
		return TypeInternal
	}
}

func userMessageForKind(kind integration.Kind) string {
	switch kind {
	case integration.KindResourceMissing, integration.KindUpstreamClientError:
		return "The requested resource could not be found"
	case integration.KindUpstreamUnreachable:
		return "Service is temporarily unavailable. Please try again later."
	default:
		return "Something went wrong. Please try again later."
	}
}

// NewInvalidIDError creates a 400 Bad Request response for a path or query
// parameter that is not a non-negative integer.
func NewInvalidIDError(requestID, field, label string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeBadRequest,
		Title:       TitleBadRequest,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("%s must contain only digits (0-9).", label),
		RequestID:   requestID,
		UserMessage: "Invalid identifier format",
		Errors: []FieldError{
			{Field: field, Message: "must contain only digits", Code: "invalid_id"},
		},
	}
}

// NewBadRequestError creates a 400 Bad Request response for malformed requests.
func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeBadRequest,
		Title:       TitleBadRequest,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

// NewNotFoundError creates a 404 Not Found response for an unknown route.
func NewNotFoundError(requestID, path string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeNotFound,
		Title:       TitleNotFound,
		Status:      http.StatusNotFound,
		Detail:      fmt.Sprintf("No route for %s", path),
		Instance:    path,
		RequestID:   requestID,
		UserMessage: "The requested resource could not be found",
	}
}

// NewMethodNotAllowedError creates a 405 response for a known route.
func NewMethodNotAllowedError(requestID, method, path string) *ProblemDetails {
	return &ProblemDetails{
		Type:      TypeMethodNotAllowed,
		Title:     TitleMethodNotAllowed,
		Status:    http.StatusMethodNotAllowed,
		Detail:    fmt.Sprintf("Method %s is not supported for %s", method, path),
		Instance:  path,
		RequestID: requestID,
	}
}

// NewRateLimitError creates a 429 Too Many Requests response.
// retryAfter specifies seconds until the client should retry.
func NewRateLimitError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeRateLimit,
		Title:       TitleRateLimit,
		Status:      http.StatusTooManyRequests,
		Detail:      fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds", retryAfter),
		RequestID:   requestID,
		UserMessage: "Too many requests. Please wait before trying again.",
		RetryAfter:  &retryAfter,
	}
}

// NewInternalError creates a 500 Internal Server Error response.
// The actual error is logged server-side; the client only sees a generic detail.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       TitleInternal,
		Status:      http.StatusInternalServerError,
		Detail:      "An unexpected error occurred",
		RequestID:   requestID,
		UserMessage: "Something went wrong. Please try again later.",
	}
}
