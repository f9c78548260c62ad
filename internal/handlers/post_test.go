package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/audition/backend/internal/apierror"
	"github.com/JonnyWalker81/audition/backend/internal/integration"
	"github.com/JonnyWalker81/audition/backend/internal/logger"
	"github.com/JonnyWalker81/audition/backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakePostService records calls and returns canned results.
type fakePostService struct {
	posts    []models.Post
	post     models.Post
	comments []models.Comment
	err      error
	panics   bool

	calls  []string
	lastID int
}

func (f *fakePostService) GetPosts(context.Context) ([]models.Post, error) {
	f.calls = append(f.calls, "GetPosts")
	return f.posts, f.err
}

func (f *fakePostService) GetPostsByUser(_ context.Context, userID int) ([]models.Post, error) {
	f.calls = append(f.calls, "GetPostsByUser")
	f.lastID = userID
	return f.posts, f.err
}

func (f *fakePostService) GetPost(_ context.Context, postID int) (models.Post, error) {
	f.calls = append(f.calls, "GetPost")
	f.lastID = postID
	if f.panics {
		panic("boom")
	}
	return f.post, f.err
}

func (f *fakePostService) GetPostWithComments(_ context.Context, postID int) (models.Post, error) {
	f.calls = append(f.calls, "GetPostWithComments")
	f.lastID = postID
	return f.post, f.err
}

func (f *fakePostService) GetCommentsByPost(_ context.Context, postID int) ([]models.Comment, error) {
	f.calls = append(f.calls, "GetCommentsByPost")
	f.lastID = postID
	return f.comments, f.err
}

func newTestRouter(svc *fakePostService) *gin.Engine {
	return NewRouter(Handlers{
		Posts:    NewPostHandler(svc),
		Comments: NewCommentHandler(svc),
		Health:   NewHealthHandler("test", "JSONPlaceholder API"),
	})
}

func do(t *testing.T, router http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) apierror.ProblemDetails {
	t.Helper()
	assert.Equal(t, apierror.ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	var problem apierror.ProblemDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	return problem
}

func TestGetPostsWithoutFilter(t *testing.T) {
	svc := &fakePostService{posts: []models.Post{{UserID: 1, ID: 1, Title: "A", Body: "B"}}}
	w := do(t, newTestRouter(svc), http.MethodGet, "/posts")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"userId":1,"id":1,"title":"A","body":"B"}]`, w.Body.String())
	assert.Equal(t, []string{"GetPosts"}, svc.calls)
}

func TestGetPostsByUser(t *testing.T) {
	svc := &fakePostService{posts: []models.Post{}}
	w := do(t, newTestRouter(svc), http.MethodGet, "/posts?userId=%207%20")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, []string{"GetPostsByUser"}, svc.calls)
	assert.Equal(t, 7, svc.lastID)
}

func TestInvalidIDsAreRejectedBeforeTheService(t *testing.T) {
	tests := []struct {
		name   string
		target string
		detail string
	}{
		{"letters in user id", "/posts?userId=abc", "UserId must contain only digits (0-9)."},
		{"empty user id", "/posts?userId=", "UserId must contain only digits (0-9)."},
		{"negative user id", "/posts?userId=-1", "UserId must contain only digits (0-9)."},
		{"letters in post id", "/posts/xyz", "Post Id must contain only digits (0-9)."},
		{"signed post id", "/posts/+5", "Post Id must contain only digits (0-9)."},
		{"overflowing post id", "/posts/99999999999999999999", "Post Id must contain only digits (0-9)."},
		{"letters in composite id", "/posts/abc/comments", "Post Id must contain only digits (0-9)."},
		{"letters in comments query", "/comments?postId=x1", "Post Id must contain only digits (0-9)."},
		{"missing comments query", "/comments", "Post Id must contain only digits (0-9)."},
		{"versioned prefix", "/api/v1/posts/1.5", "Post Id must contain only digits (0-9)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakePostService{}
			w := do(t, newTestRouter(svc), http.MethodGet, tt.target)

			require.Equal(t, http.StatusBadRequest, w.Code)
			problem := decodeProblem(t, w)
			assert.Equal(t, "Bad Request", problem.Title)
			assert.Equal(t, tt.detail, problem.Detail)
			assert.Empty(t, svc.calls)
		})
	}
}

func TestGetPost(t *testing.T) {
	svc := &fakePostService{post: models.Post{UserID: 1, ID: 10, Title: "t", Body: "b"}}
	w := do(t, newTestRouter(svc), http.MethodGet, "/posts/10")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":1,"id":10,"title":"t","body":"b"}`, w.Body.String())
	assert.Equal(t, 10, svc.lastID)
}

func TestGetPostWithCommentsRendersComments(t *testing.T) {
	comments := []models.Comment{{ID: 1, PostID: 5, Name: "n", Email: "e@x.io", Body: "c"}}
	svc := &fakePostService{post: models.Post{UserID: 1, ID: 5, Title: "t", Body: "b"}.WithComments(comments)}
	w := do(t, newTestRouter(svc), http.MethodGet, "/api/v1/posts/5/comments")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":1,"id":5,"title":"t","body":"b","comments":[{"id":1,"postId":5,"name":"n","email":"e@x.io","body":"c"}]}`, w.Body.String())
	assert.Equal(t, []string{"GetPostWithComments"}, svc.calls)
}

func TestGetComments(t *testing.T) {
	svc := &fakePostService{comments: []models.Comment{{ID: 2, PostID: 3, Name: "n", Email: "e", Body: "b"}}}
	w := do(t, newTestRouter(svc), http.MethodGet, "/comments?postId=3")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":2,"postId":3,"name":"n","email":"e","body":"b"}]`, w.Body.String())
	assert.Equal(t, 3, svc.lastID)
}

func TestNormalizedErrorsRenderAsProblems(t *testing.T) {
	tests := []struct {
		name   string
		err    *integration.Error
		status int
	}{
		{
			name:   "missing",
			err:    integration.NewError(integration.KindResourceMissing, http.StatusNotFound, integration.TitleNotFound, "No data found for post with id 1", nil),
			status: http.StatusNotFound,
		},
		{
			name:   "unreachable",
			err:    integration.NewError(integration.KindUpstreamUnreachable, http.StatusServiceUnavailable, "Backend service JSONPlaceholder API Unavailable", "Unable to connect to JSONPlaceholder API while fetching post with id 1: refused", errors.New("refused")),
			status: http.StatusServiceUnavailable,
		},
		{
			name:   "server error",
			err:    integration.NewError(integration.KindUpstreamServerError, http.StatusBadGateway, "JSONPlaceholder API Error", "External service error occurred while fetching post with id 1: 502", nil),
			status: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakePostService{err: tt.err}
			w := do(t, newTestRouter(svc), http.MethodGet, "/posts/1")

			require.Equal(t, tt.status, w.Code)
			problem := decodeProblem(t, w)
			assert.Equal(t, tt.status, problem.Status)
			assert.Equal(t, tt.err.Title, problem.Title)
			assert.Equal(t, tt.err.Message, problem.Detail)
			assert.Equal(t, "/posts/1", problem.Instance)
		})
	}
}

func TestUnknownErrorsRenderGeneric500(t *testing.T) {
	svc := &fakePostService{err: errors.New("secret internals")}
	w := do(t, newTestRouter(svc), http.MethodGet, "/comments?postId=1")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	problem := decodeProblem(t, w)
	assert.Equal(t, apierror.TitleInternal, problem.Title)
	assert.NotContains(t, w.Body.String(), "secret internals")
}

func TestUnknownRouteAndWrongMethod(t *testing.T) {
	router := newTestRouter(&fakePostService{})

	w := do(t, router, http.MethodGet, "/users")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierror.TypeNotFound, decodeProblem(t, w).Type)

	w = do(t, router, http.MethodPost, "/posts")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, apierror.TypeMethodNotAllowed, decodeProblem(t, w).Type)
}

func TestPanicRendersInternalProblem(t *testing.T) {
	w := do(t, newTestRouter(&fakePostService{panics: true}), http.MethodGet, "/posts/1")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apierror.TypeInternal, decodeProblem(t, w).Type)
}

func TestPanicIsLoggedWithRequestContext(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: logger.LevelInfo, Format: "json", Output: &buf})
	withLogger := func(c *gin.Context) {
		ctx := logger.WithRequestID(c.Request.Context(), "req-42")
		c.Request = c.Request.WithContext(logger.WithLogger(ctx, log))
		c.Next()
	}

	svc := &fakePostService{panics: true}
	router := NewRouter(Handlers{
		Posts:    NewPostHandler(svc),
		Comments: NewCommentHandler(svc),
		Health:   NewHealthHandler("test", "JSONPlaceholder API"),
	}, withLogger)
	w := do(t, router, http.MethodGet, "/posts/1")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	line := buf.String()
	assert.Contains(t, line, `"msg":"panic recovered"`)
	assert.Contains(t, line, `"panic":"boom"`)
	assert.Contains(t, line, `"request_id":"req-42"`)
	assert.Contains(t, line, `"path":"/posts/1"`)
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(&fakePostService{}), http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","env":"test","upstream":"JSONPlaceholder API"}`, w.Body.String())
}

func TestParseID(t *testing.T) {
	valid := map[string]int{"0": 0, "42": 42, " 7 ": 7, "007": 7}
	for raw, want := range valid {
		got, err := ParseID(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "   ", "-1", "+1", "1e3", "0x10", "١٢", "1 2"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, errInvalidID, raw)
	}
}
