// Package relay brokers summary requests between the client and the
// summarization API.
//
// The relay keeps the API key away from the client and only answers
// allow-listed origins. Each request is handled on its own: guards reject bad
// origins, methods, oversized bodies and missing URLs before any upstream
// call; the model's answer is normalized to a {title, summary} object; any
// upstream failure is reported once as a 500 and never retried. A circuit
// breaker makes the relay fail fast while the upstream keeps failing.
package relay
