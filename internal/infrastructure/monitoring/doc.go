/*
Package monitoring provides Prometheus metrics for the relay and the client.

# Overview

Each Metrics value owns a private registry, so constructing one per relay
server (or per test) never collides on registration.

# Features

- HTTP request metrics (count, latency, size)
- Relay guard rejections by reason (origin, method, size, body)
- Upstream call outcomes, latency and breaker state
- Client popup, summary outcome, stale response and page fetch counters

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics)
	// ... call the summarization API ...
	timer.Stop("success")
*/
package monitoring
