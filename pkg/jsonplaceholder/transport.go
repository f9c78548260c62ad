package jsonplaceholder

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/JonnyWalker81/audition/backend/internal/logger"
)

// TransportConfig tunes the underlying *http.Client
type TransportConfig struct {
	// Total timeout for the entire request (includes redirects and reading
	// the body). A context deadline can still override this.
	Timeout time.Duration

	DialTimeout     time.Duration
	KeepAlive       time.Duration
	TLSHandshake    time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConns        int
	MaxIdleConnsPerHost int

	// Logger, when set, wraps the transport in a LoggingTransport
	Logger    logger.Logger
	LogBodies bool
}

// DefaultTransportConfig returns the timeouts used when nothing is configured
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Timeout:             30 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
	}
}

// NewHTTPClient builds an *http.Client from cfg
func NewHTTPClient(cfg TransportConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	var rt http.RoundTripper = &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	if cfg.Logger != nil {
		rt = &LoggingTransport{
			Base:      rt,
			Logger:    cfg.Logger,
			LogBodies: cfg.LogBodies,
		}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
	}
}

// defaultMaxLoggedBody caps logged response bodies
const defaultMaxLoggedBody = 4096

// LoggingTransport logs every outbound request and its response. It never
// changes what the caller receives: the body is re-buffered after logging
// and read failures are replayed to the caller.
type LoggingTransport struct {
	Base      http.RoundTripper
	Logger    logger.Logger
	LogBodies bool
	// MaxBodyBytes caps the logged body; 0 means defaultMaxLoggedBody
	MaxBodyBytes int
}

// RoundTrip implements http.RoundTripper
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	log := t.logger().WithContext(req.Context())

	log.Info("upstream request",
		logger.String("method", req.Method),
		logger.String("url", req.URL.String()),
		logger.Any("headers", req.Header),
	)

	start := time.Now()
	resp, err := t.base().RoundTrip(req)
	latency := time.Since(start)
	if err != nil {
		log.Warn("upstream request failed",
			logger.String("method", req.Method),
			logger.String("url", req.URL.String()),
			logger.Duration("latency", latency),
			logger.Err(err),
		)
		return resp, err
	}

	fields := []logger.Field{
		logger.Int("status", resp.StatusCode),
		logger.String("status_text", http.StatusText(resp.StatusCode)),
		logger.Any("headers", resp.Header),
		logger.Duration("latency", latency),
	}

	if t.LogBodies && resp.Body != nil {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		var replay io.Reader = bytes.NewReader(body)
		if readErr != nil {
			replay = io.MultiReader(replay, errReader{readErr})
		}
		resp.Body = io.NopCloser(replay)

		fields = append(fields, logger.String("body", t.truncate(body)))
	}

	log.Debug("upstream response", fields...)
	return resp, nil
}

func (t *LoggingTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *LoggingTransport) logger() logger.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return logger.Default()
}

func (t *LoggingTransport) truncate(body []byte) string {
	limit := t.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxLoggedBody
	}
	if len(body) > limit {
		return string(body[:limit]) + "...(truncated)"
	}
	return string(body)
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
