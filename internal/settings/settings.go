// Package settings holds the user preferences of the client and their
// persistence.
package settings

import (
	"errors"
	"fmt"
	"net/url"
)

const (
	DefaultHoverDelay = 800
	MinHoverDelay     = 200
	MaxHoverDelay     = 3000
)

var (
	ErrInvalidHoverDelay = errors.New("hover delay must be between 200-3000ms")
	ErrInvalidEndpoint   = errors.New("proxy endpoint must be an absolute http(s) URL")
)

// Settings are read once per context and treated as read-only for the rest
// of the session.
type Settings struct {
	HoverDelay    int    `toml:"hoverDelay" json:"hoverDelay"`
	Enabled       bool   `toml:"enabled" json:"enabled"`
	ProxyEndpoint string `toml:"proxyEndpoint" json:"proxyEndpoint"`
}

// Defaults returns the settings used for any key not yet persisted.
func Defaults() Settings {
	return Settings{
		HoverDelay: DefaultHoverDelay,
		Enabled:    true,
	}
}

// Validate checks the hover delay range and the endpoint shape.
func (s Settings) Validate() error {
	if s.HoverDelay < MinHoverDelay || s.HoverDelay > MaxHoverDelay {
		return fmt.Errorf("%w: got %d", ErrInvalidHoverDelay, s.HoverDelay)
	}
	if s.ProxyEndpoint != "" {
		u, err := url.Parse(s.ProxyEndpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidEndpoint, s.ProxyEndpoint)
		}
	}
	return nil
}

// Configured reports whether a relay endpoint has been set.
func (s Settings) Configured() bool {
	return s.ProxyEndpoint != ""
}
