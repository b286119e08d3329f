// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for humans
//
// Both the relay and the client CLI log to stderr so that command output on
// stdout stays clean. The upstream API key is never passed to a logger.
//
// Example Usage:
//
//	logger := logging.NewFromLevel("info", false)
//	logger.Info("relay listening", zap.String("addr", ":8787"))
//	logger.Named("hover").Debug("debounce fired", zap.String("url", u))
package logging
