package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8787", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "/", cfg.Relay.Path)
	assert.Equal(t, 10000, cfg.Relay.MaxBodyBytes)
	assert.Equal(t, "gemini-2.5-flash", cfg.Upstream.Model)
	assert.InDelta(t, 0.3, cfg.Upstream.Temperature, 1e-9)
	assert.Equal(t, 300, cfg.Upstream.MaxOutputTokens)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default().Relay, cfg.Relay)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	assert.Empty(t, cfg.Upstream.APIKey)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                     "9000",
		"HOST":                     "127.0.0.1",
		"ALLOWED_ORIGINS":          "chrome-extension://abc,moz-extension://def",
		"MAX_BODY_BYTES":           "2048",
		"GEMINI_API_KEY":           "secret",
		"GEMINI_MODEL":             "gemini-2.0-flash",
		"GEMINI_TEMPERATURE":       "0.1",
		"GEMINI_MAX_OUTPUT_TOKENS": "128",
		"UPSTREAM_TIMEOUT":         "5s",
		"LOG_LEVEL":                "debug",
		"LOG_DEV":                  "true",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, []string{"chrome-extension://abc", "moz-extension://def"}, cfg.Relay.AllowedOrigins)
	assert.Equal(t, 2048, cfg.Relay.MaxBodyBytes)
	assert.Equal(t, "secret", cfg.Upstream.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Upstream.Model)
	assert.InDelta(t, 0.1, cfg.Upstream.Temperature, 1e-9)
	assert.Equal(t, 128, cfg.Upstream.MaxOutputTokens)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "non-numeric body cap", key: "MAX_BODY_BYTES", val: "lots"},
		{name: "zero body cap", key: "MAX_BODY_BYTES", val: "0"},
		{name: "negative token budget", key: "GEMINI_MAX_OUTPUT_TOKENS", val: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("ARCKS_SETTINGS_PATH", "/tmp/arcks-test/settings.toml")
	t.Setenv("PAGE_FETCH_TIMEOUT", "3s")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/arcks-test/settings.toml", cfg.SettingsPath)
	assert.Equal(t, 3*time.Second, cfg.PageFetchTimeout)
	assert.Equal(t, 30*time.Second, cfg.RelayTimeout)
	assert.Equal(t, "chrome-extension://arcks", cfg.ExtensionOrigin)
}

func TestLoadClientDefaultsSettingsPath(t *testing.T) {
	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Contains(t, cfg.SettingsPath, "settings.toml")
	assert.Equal(t, DefaultClient().UserAgent, cfg.UserAgent)
}
