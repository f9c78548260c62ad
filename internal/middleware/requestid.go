package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/audition/backend/internal/apierror"
	"github.com/JonnyWalker81/audition/backend/internal/logger"
)

// HeaderRequestID is the correlation header read from and echoed to clients.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID echoes a well-formed X-Request-ID header or generates a UUID.
// The ID is stored on the gin context, in the request context for logging,
// and on the response.
func RequestID(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		incoming := c.GetHeader(HeaderRequestID)
		if !validRequestID(incoming) {
			incoming = ""
		}

		ctx := logger.WithRequestID(c.Request.Context(), incoming)
		ctx = logger.WithLogger(ctx, log)
		requestID := logger.RequestIDFromContext(ctx)

		c.Request = c.Request.WithContext(ctx)
		c.Set(apierror.RequestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
