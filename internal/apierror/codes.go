package apierror

// Error type URIs following the urn:audition:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeBadRequest indicates a malformed path or query parameter (400)
	TypeBadRequest = "urn:audition:error:bad_request"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:audition:error:not_found"

	// TypeMethodNotAllowed indicates the route exists for another method (405)
	TypeMethodNotAllowed = "urn:audition:error:method_not_allowed"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:audition:error:rate_limit"

	// TypeUpstreamClient indicates the upstream rejected the request (4xx)
	TypeUpstreamClient = "urn:audition:error:upstream_client"

	// TypeUpstream indicates the upstream failed or answered unexpectedly
	TypeUpstream = "urn:audition:error:upstream"

	// TypeUnavailable indicates the upstream could not be reached (503)
	TypeUnavailable = "urn:audition:error:unavailable"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:audition:error:internal"
)

// Titles for each error type - human-readable summaries
const (
	TitleBadRequest       = "Bad Request"
	TitleNotFound         = "Resource Not Found"
	TitleMethodNotAllowed = "Method Not Allowed"
	TitleRateLimit        = "Rate Limit Exceeded"
	TitleUnavailable      = "Service Unavailable"
	TitleInternal         = "Internal Server Error"
)
