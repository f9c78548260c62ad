package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/JonnyWalker81/audition/backend/internal/logger"
	"github.com/JonnyWalker81/audition/backend/pkg/jsonplaceholder"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// UpstreamConfig describes the JSONPlaceholder-compatible API being proxied
type UpstreamConfig struct {
	URL     string        `mapstructure:"url"`
	Name    string        `mapstructure:"name"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CORSConfig lists allowed origins; empty allows all
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig is a per-client token bucket; RPS <= 0 disables it
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Backend   string `mapstructure:"backend"`
	AddSource bool   `mapstructure:"add_source"`
	Bodies    bool   `mapstructure:"bodies"`
}

// Load reads configuration from .env, environment variables and config files
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("upstream.url", jsonplaceholder.DefaultBaseURL)
	v.SetDefault("upstream.name", "JSONPlaceholder API")
	v.SetDefault("upstream.timeout", 30*time.Second)
	v.SetDefault("cors.allowed_origins", []string{})
	v.SetDefault("ratelimit.rps", 0)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.backend", logger.BackendSlog)
	v.SetDefault("log.add_source", false)
	v.SetDefault("log.bodies", false)

	// Read from environment variables
	v.SetEnvPrefix("AUDITION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables
	v.BindEnv("server.port", "AUDITION_SERVER_PORT", "PORT")
	v.BindEnv("upstream.url", "AUDITION_UPSTREAM_URL", "JSONPLACEHOLDER_API_URL")

	// Read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that configuration values are usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.Upstream.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("upstream.url must be an absolute http(s) URL, got %q", c.Upstream.URL)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive, got %s", c.Upstream.Timeout)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	switch c.Log.Backend {
	case logger.BackendSlog, logger.BackendZerolog:
	default:
		return fmt.Errorf("log.backend must be %q or %q, got %q", logger.BackendSlog, logger.BackendZerolog, c.Log.Backend)
	}
	return nil
}

// IsProduction reports whether the server runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// LoggerConfig maps the log section onto the logger package
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:     logger.ParseLevel(c.Log.Level),
		Format:    c.Log.Format,
		Backend:   c.Log.Backend,
		LogBodies: c.Log.Bodies,
		AddSource: c.Log.AddSource,
	}
}

// TransportConfig derives the upstream HTTP transport settings
func (c *Config) TransportConfig(log logger.Logger) jsonplaceholder.TransportConfig {
	tc := jsonplaceholder.DefaultTransportConfig()
	tc.Timeout = c.Upstream.Timeout
	tc.Logger = log
	tc.LogBodies = c.Log.Bodies
	return tc
}
