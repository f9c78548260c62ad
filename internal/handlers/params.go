package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/audition/backend/internal/apierror"
	"github.com/JonnyWalker81/audition/backend/internal/logger"
)

// Labels used in invalid id problem details.
const (
	labelPostID = "Post Id"
	labelUserID = "UserId"
)

var errInvalidID = errors.New("id must contain only digits")

// ParseID trims raw and accepts a non-empty run of ASCII digits that fits an int.
func ParseID(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errInvalidID
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, errInvalidID
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, errInvalidID
	}
	return id, nil
}

// bindID parses raw or writes a 400 problem and reports false.
func bindID(c *gin.Context, raw, field, label string) (int, bool) {
	id, err := ParseID(raw)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewInvalidIDError(requestID, field, label).WithInstance(c.Request.URL.Path))
		return 0, false
	}
	return id, true
}

// writeError renders a service error and logs its cause.
func writeError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)
	problem := apierror.FromError(requestID, c.Request.URL.Path, err)
	logRequestError(c, problem, err)
	apierror.WriteProblem(c, problem)
}

func logRequestError(c *gin.Context, problem *apierror.ProblemDetails, err error) {
	log := logger.Ctx(c.Request.Context())
	fields := []logger.Field{
		logger.Int("status", problem.Status),
		logger.String("title", problem.Title),
		logger.String("path", c.Request.URL.Path),
		logger.Err(err),
	}
	if problem.Status >= 500 {
		log.Error("request failed", fields...)
		return
	}
	log.Warn("request failed", fields...)
}
