// Package config loads relay and client configuration from the environment
// (12-factor) using envconfig. Every field has a default so both binaries
// start without any environment; the relay refuses to summarize without
// GEMINI_API_KEY but still serves health and metrics.
package config
