// Package middleware provides the HTTP middleware of the relay.
//
// Middleware stack includes:
//   - OriginGuard: rejects requests whose Origin is missing or not allow-listed
//   - CORS: preflight answers and CORS headers for allow-listed origins
//   - RequestID: X-Request-ID propagation with prefixed ULIDs
//   - Logging: structured request logging through zap
//
// OriginGuard must run before CORS so that a refused origin never receives
// CORS headers.
//
// Example Usage:
//
//	origins := middleware.NewOrigins(cfg.Relay.AllowedOrigins)
//	group := router.Group("/", middleware.OriginGuard(origins, metrics.RecordRejection), middleware.CORS(middleware.DefaultCORSConfig(origins)))
package middleware
