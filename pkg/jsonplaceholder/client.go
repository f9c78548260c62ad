// Package jsonplaceholder is a small buffering HTTP client for the public
// JSONPlaceholder posts/comments API (or anything shaped like it).
package jsonplaceholder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/yosida95/uritemplate/v3"
)

// DefaultBaseURL is used when no base URL is configured
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Doer is the subset of *http.Client used by Client
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Vars holds values substituted into a URI template
type Vars map[string]any

// Response is a fully buffered upstream response
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// IsSuccess reports a 2xx status
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Empty reports an absent body or a JSON null
func (r *Response) Empty() bool {
	body := bytes.TrimSpace(r.Body)
	return len(body) == 0 || bytes.Equal(body, []byte("null"))
}

// Client issues GET requests against a fixed base URL
type Client struct {
	baseURL    string
	httpClient Doer
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.httpClient = d
		}
	}
}

// NewClient creates a new client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: NewHTTPClient(DefaultTransportConfig()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL expands a URI template (RFC 6570) relative to the base URL.
func (c *Client) URL(template string, vars Vars) (string, error) {
	tmpl, err := uritemplate.New(c.baseURL + template)
	if err != nil {
		return "", fmt.Errorf("parse uri template %q: %w", template, err)
	}

	values := uritemplate.Values{}
	for name, v := range vars {
		values.Set(name, uritemplate.String(fmt.Sprint(v)))
	}

	expanded, err := tmpl.Expand(values)
	if err != nil {
		return "", fmt.Errorf("expand uri template %q: %w", template, err)
	}
	return expanded, nil
}

// Get performs a GET request and buffers the whole response.
//
// 4xx/5xx statuses are returned as *StatusError and network failures as
// *TransportError. Any other status comes back as a Response; when it is 2xx
// with a non-empty body the body is decoded into out.
func (c *Client) Get(ctx context.Context, template string, vars Vars, out any) (*Response, error) {
	target, err := c.URL(template, vars)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}

	if resp.StatusCode >= 400 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        target,
			Body:       string(body),
		}
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header.Clone(),
		Body:       body,
	}

	if out != nil && response.IsSuccess() && !response.Empty() {
		if err := json.Unmarshal(body, out); err != nil {
			return response, &DecodeError{URL: target, Err: err}
		}
	}

	return response, nil
}
