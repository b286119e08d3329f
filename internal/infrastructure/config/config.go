package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds relay configuration.
type Config struct {
	Server   ServerConfig
	Relay    RelayConfig
	Upstream UpstreamConfig
	Logging  LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8787"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// RelayConfig holds the request guards of the relay.
type RelayConfig struct {
	Path           string   `envconfig:"RELAY_PATH" default:"/"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"chrome-extension://arcks"`
	MaxBodyBytes   int      `envconfig:"MAX_BODY_BYTES" default:"10000"`
}

// UpstreamConfig holds the summarization API configuration.
type UpstreamConfig struct {
	APIKey          string        `envconfig:"GEMINI_API_KEY"`
	Model           string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	BaseURL         string        `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	Temperature     float64       `envconfig:"GEMINI_TEMPERATURE" default:"0.3"`
	MaxOutputTokens int           `envconfig:"GEMINI_MAX_OUTPUT_TOKENS" default:"300"`
	Timeout         time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads relay configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	if len(c.Relay.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS must list at least one origin")
	}
	if c.Relay.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.Relay.MaxBodyBytes)
	}
	if c.Upstream.MaxOutputTokens <= 0 {
		return fmt.Errorf("GEMINI_MAX_OUTPUT_TOKENS must be positive, got %d", c.Upstream.MaxOutputTokens)
	}
	return nil
}

// Default returns default relay configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8787",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
		},
		Relay: RelayConfig{
			Path:           "/",
			AllowedOrigins: []string{"chrome-extension://arcks"},
			MaxBodyBytes:   10000,
		},
		Upstream: UpstreamConfig{
			Model:           "gemini-2.5-flash",
			BaseURL:         "https://generativelanguage.googleapis.com",
			Temperature:     0.3,
			MaxOutputTokens: 300,
			Timeout:         30 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
