package jsonplaceholder

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, WithHTTPClient(server.Client()))
}

func TestNewClientTrimsBaseURL(t *testing.T) {
	assert.Equal(t, "http://example.com", NewClient("http://example.com/").BaseURL())
	assert.Equal(t, DefaultBaseURL, NewClient("  ").BaseURL())
}

func TestURLExpandsTemplates(t *testing.T) {
	c := NewClient("http://example.com")

	got, err := c.URL("/posts/{id}", Vars{"id": 5})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/posts/5", got)

	got, err = c.URL("/posts{?userId}", Vars{"userId": 7})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/posts?userId=7", got)

	got, err = c.URL("/posts/{id}", Vars{"id": "a/b c"})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/posts/a%2Fb%20c", got)
}

func TestGetDecodesSuccessfulBody(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items/3", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":3,"title":"three","ignored":1}`)
	})

	var out item
	resp, err := c.Get(context.Background(), "/items/{id}", Vars{"id": 3}, &out)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, resp.Empty())
	assert.Equal(t, item{ID: 3, Title: "three"}, out)
}

func TestGetEmptyAndNullBodies(t *testing.T) {
	for _, body := range []string{"", "null", "  null\n"} {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		})

		var out *item
		resp, err := c.Get(context.Background(), "/items", nil, &out)
		require.NoError(t, err, "body %q", body)
		assert.True(t, resp.Empty(), "body %q", body)
		assert.Nil(t, out)
	}
}

func TestGetStatusErrors(t *testing.T) {
	tests := []struct {
		status     int
		wantClient bool
		wantServer bool
	}{
		{http.StatusNotFound, true, false},
		{http.StatusBadRequest, true, false},
		{http.StatusInternalServerError, false, true},
		{http.StatusBadGateway, false, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, `{"error":"nope"}`)
			})

			resp, err := c.Get(context.Background(), "/items", nil, &item{})
			require.Error(t, err)
			assert.Nil(t, resp)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, tt.wantClient, statusErr.IsClientError())
			assert.Equal(t, tt.wantServer, statusErr.IsServerError())
			assert.Contains(t, statusErr.Error(), `{"error":"nope"}`)
		})
	}
}

func TestGetNonSuccessValueIsNotAnError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	})

	resp, err := c.Get(context.Background(), "/items", nil, &item{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	assert.False(t, resp.IsSuccess())
}

func TestGetTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(url)
	_, err := c.Get(context.Background(), "/items", nil, &item{})
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, url+"/items", transportErr.URL)
}

func TestGetDecodeError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":"not-a-number"`)
	})

	resp, err := c.Get(context.Background(), "/items", nil, &item{})
	require.Error(t, err)
	require.NotNil(t, resp)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

type failingDoer struct{ err error }

func (d failingDoer) Do(*http.Request) (*http.Response, error) { return nil, d.err }

func TestGetWrapsDoerErrors(t *testing.T) {
	boom := errors.New("dial tcp: lookup nowhere: no such host")
	c := NewClient("http://nowhere.invalid", WithHTTPClient(failingDoer{err: boom}))

	_, err := c.Get(context.Background(), "/items", nil, nil)
	require.ErrorIs(t, err, boom)
	assert.True(t, strings.HasPrefix(err.Error(), "I/O error on GET request"))
}
