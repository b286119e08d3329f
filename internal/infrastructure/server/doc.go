// Package server assembles the summarization relay.
//
// Routes:
//   - GET /healthz: liveness plus upstream breaker state
//   - GET /metrics: Prometheus exposition
//   - <RELAY_PATH> (any method): the relay endpoint
//
// Middleware order on the relay route is origin guard, CORS, handler. The
// handler itself enforces method, body size and URL presence.
//
// Example Usage:
//
//	cfg, err := config.Load()
//	srv := server.NewServer(cfg, logger, nil)
//	go srv.Run()
//	defer srv.Shutdown(ctx)
package server
