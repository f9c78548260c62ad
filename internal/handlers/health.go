package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/audition/backend/internal/apierror"
	"github.com/JonnyWalker81/audition/backend/internal/logger"
)

type HealthHandler struct {
	env      string
	upstream string
}

// NewHealthHandler creates a health handler reporting the environment and upstream name
func NewHealthHandler(env, upstream string) *HealthHandler {
	return &HealthHandler{env: env, upstream: upstream}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"env":      h.env,
		"upstream": h.upstream,
	})
}

// NoRoute renders a 404 problem for unknown paths.
func NoRoute(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, c.Request.URL.Path))
}

// NoMethod renders a 405 problem for known paths requested with the wrong method.
func NoMethod(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	apierror.WriteProblem(c, apierror.NewMethodNotAllowedError(requestID, c.Request.Method, c.Request.URL.Path))
}

// Recovery renders a 500 problem after a panic in a handler.
func Recovery(c *gin.Context, recovered any) {
	logger.Ctx(c.Request.Context()).Error("panic recovered",
		logger.String("panic", fmt.Sprint(recovered)),
		logger.String("method", c.Request.Method),
		logger.String("path", c.Request.URL.Path),
	)
	requestID := apierror.GetRequestID(c)
	apierror.AbortWithProblem(c, apierror.NewInternalError(requestID).WithInstance(c.Request.URL.Path))
}
