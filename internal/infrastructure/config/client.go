package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ClientConfig holds configuration of the client side: the rendering context
// that watches hovers and the privileged context that talks to the relay.
type ClientConfig struct {
	SettingsPath     string        `envconfig:"ARCKS_SETTINGS_PATH"`
	ExtensionOrigin  string        `envconfig:"ARCKS_EXTENSION_ORIGIN" default:"chrome-extension://arcks"`
	UserAgent        string        `envconfig:"ARCKS_USER_AGENT" default:"Mozilla/5.0 (compatible; Arcks/1.0)"`
	PageFetchTimeout time.Duration `envconfig:"PAGE_FETCH_TIMEOUT" default:"10s"`
	RelayTimeout     time.Duration `envconfig:"RELAY_TIMEOUT" default:"30s"`
	Logging          LogConfig
}

// LoadClient loads client configuration from environment variables.
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load client config: %w", err)
	}
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = DefaultSettingsPath()
	}
	return &cfg, nil
}

// DefaultClient returns default client configuration.
func DefaultClient() *ClientConfig {
	return &ClientConfig{
		SettingsPath:     DefaultSettingsPath(),
		ExtensionOrigin:  "chrome-extension://arcks",
		UserAgent:        "Mozilla/5.0 (compatible; Arcks/1.0)",
		PageFetchTimeout: 10 * time.Second,
		RelayTimeout:     30 * time.Second,
		Logging: LogConfig{
			Level: "info",
		},
	}
}

// DefaultSettingsPath returns the per-profile settings file location.
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "arcks", "settings.toml")
}
