// Package background is the privileged context of the client. It owns the
// settings store and is the only part of the client that talks to the relay.
package background

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/arcks/internal/infrastructure/logging"
	"github.com/GriffinCanCode/arcks/internal/providers/http/client"
	"github.com/GriffinCanCode/arcks/internal/settings"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

// Error texts shown in the popup when no relay call is made.
const (
	ErrNotConfigured = "Worker URL not configured. Set it in extension options."
	ErrDisabled      = "Extension is disabled"
)

// Config configures the handler.
type Config struct {
	// Origin is sent on every relay call and must be on the relay's allow-list.
	Origin    string
	Timeout   time.Duration
	UserAgent string
}

// Handler answers bridge requests.
type Handler struct {
	store  settings.Store
	http   *resty.Client
	origin string
	logger *logging.Logger
}

// New creates a handler reading settings from store.
func New(store settings.Store, cfg Config, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		store: store,
		http: client.New(client.Options{
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
		}),
		origin: cfg.Origin,
		logger: logger.Named("background"),
	}
}

// GetSettings returns the persisted settings.
func (h *Handler) GetSettings(ctx context.Context) (settings.Settings, error) {
	return h.store.Load(ctx)
}

// GetSummary forwards url and content to the relay. Without an endpoint, or
// while disabled, it answers with an error and makes no call.
func (h *Handler) GetSummary(ctx context.Context, url, content string) summary.Result {
	s, err := h.store.Load(ctx)
	if err != nil {
		return summary.Failure(err.Error())
	}
	if !s.Configured() {
		return summary.Failure(ErrNotConfigured)
	}
	if !s.Enabled {
		return summary.Failure(ErrDisabled)
	}

	var result summary.Result
	req := h.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(summary.Request{URL: url, Content: content}).
		SetResult(&result)
	if h.origin != "" {
		req.SetHeader("Origin", h.origin)
	}

	resp, err := req.Post(s.ProxyEndpoint)
	if err != nil {
		h.logger.Warn("Relay call failed", zap.String("url", url), zap.Error(err))
		return summary.Failure(err.Error())
	}
	if !resp.IsSuccess() {
		body := strings.TrimSpace(resp.String())
		h.logger.Warn("Relay returned error",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode()),
		)
		return summary.Failuref("API error: %d - %s", resp.StatusCode(), body)
	}
	return result
}
