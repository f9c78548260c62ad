package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/audition/backend/internal/logger"
)

// inEmptyDir runs the test from a directory with no config.yaml or .env.
func inEmptyDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"PORT", "JSONPLACEHOLDER_API_URL", "AUDITION_UPSTREAM_URL", "AUDITION_SERVER_PORT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inEmptyDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "https://jsonplaceholder.typicode.com", cfg.Upstream.URL)
	assert.Equal(t, "JSONPlaceholder API", cfg.Upstream.Name)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
	assert.Equal(t, logger.BackendSlog, cfg.Log.Backend)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("AUDITION_SERVER_ENV", "production")
	t.Setenv("AUDITION_UPSTREAM_TIMEOUT", "5s")
	t.Setenv("AUDITION_LOG_BACKEND", "zerolog")
	t.Setenv("AUDITION_RATELIMIT_RPS", "2.5")
	t.Setenv("AUDITION_CORS_ALLOWED_ORIGINS", "https://a.example.com,https://*.example.org")
	t.Setenv("PORT", "9090")
	t.Setenv("JSONPLACEHOLDER_API_URL", "http://localhost:3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Upstream.URL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, logger.BackendZerolog, cfg.Log.Backend)
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 0.0001)
	assert.Equal(t, []string{"https://a.example.com", "https://*.example.org"}, cfg.CORS.AllowedOrigins)
}

func TestPrefixedUpstreamURLWins(t *testing.T) {
	inEmptyDir(t)
	t.Setenv("AUDITION_UPSTREAM_URL", "http://primary:1")
	t.Setenv("JSONPLACEHOLDER_API_URL", "http://fallback:2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://primary:1", cfg.Upstream.URL)
}

func TestLoadFromConfigFileAndDotEnv(t *testing.T) {
	dir := inEmptyDir(t)
	yaml := "upstream:\n  name: Posts Backend\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AUDITION_SERVER_ENV=staging\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("AUDITION_SERVER_ENV") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Posts Backend", cfg.Upstream.Name)
	assert.Equal(t, "staging", cfg.Server.Env)
	assert.Equal(t, logger.LevelDebug, cfg.LoggerConfig().Level)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:   ServerConfig{Port: "8080"},
		Upstream: UpstreamConfig{URL: "https://jsonplaceholder.typicode.com", Timeout: time.Second},
		Log:      LogConfig{Backend: logger.BackendSlog},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative url", func(c *Config) { c.Upstream.URL = "/posts" }},
		{"unparsable url", func(c *Config) { c.Upstream.URL = "http://[::1" }},
		{"ftp url", func(c *Config) { c.Upstream.URL = "ftp://example.com" }},
		{"zero timeout", func(c *Config) { c.Upstream.Timeout = 0 }},
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"unknown backend", func(c *Config) { c.Log.Backend = "logrus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestTransportConfig(t *testing.T) {
	cfg := Config{Upstream: UpstreamConfig{Timeout: 7 * time.Second}, Log: LogConfig{Bodies: true}}
	log := logger.Nop()

	tc := cfg.TransportConfig(log)
	assert.Equal(t, 7*time.Second, tc.Timeout)
	assert.True(t, tc.LogBodies)
	assert.Same(t, log, tc.Logger)
}
