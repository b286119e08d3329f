// Package mediator turns a hovered URL into a summary result: it fetches the
// page, sanitizes it and asks the privileged context for a summary.
package mediator

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/arcks/internal/infrastructure/logging"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/arcks/internal/providers/http/client"
	"github.com/GriffinCanCode/arcks/internal/sanitizer"
	"github.com/GriffinCanCode/arcks/internal/settings"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

// DefaultMaxPageBytes bounds how much of a page is read.
const DefaultMaxPageBytes = 5 << 20

// Requester is the privileged context as seen from the page.
type Requester interface {
	GetSettings(ctx context.Context) (settings.Settings, error)
	GetSummary(ctx context.Context, url, content string) summary.Result
}

// Config configures page fetching.
type Config struct {
	Timeout      time.Duration
	UserAgent    string
	MaxPageBytes int64
}

// Mediator implements the summary flow for one page.
type Mediator struct {
	requester Requester
	http      *resty.Client
	maxBytes  int64
	logger    *logging.Logger
	metrics   *monitoring.Metrics

	mu       sync.Mutex
	settings *settings.Settings
}

// New creates a mediator. metrics may be nil.
func New(requester Requester, cfg Config, logger *logging.Logger, metrics *monitoring.Metrics) *Mediator {
	if cfg.MaxPageBytes <= 0 {
		cfg.MaxPageBytes = DefaultMaxPageBytes
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Mediator{
		requester: requester,
		http: client.New(client.Options{
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
			Headers:   map[string]string{"Accept": "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8"},
		}),
		maxBytes: cfg.MaxPageBytes,
		logger:   logger.Named("mediator"),
		metrics:  metrics,
	}
}

// Summarize fetches url, sanitizes it and requests its summary. A page that
// cannot be fetched is summarized from its URL alone. Nothing is fetched
// while previews are disabled or no relay endpoint is set; the privileged
// context answers those requests with its configuration error.
func (m *Mediator) Summarize(ctx context.Context, url string) summary.Result {
	content := ""
	if m.ready(ctx) {
		content = m.FetchContent(ctx, url)
	}
	return m.requester.GetSummary(ctx, url, content)
}

// Settings returns the privileged context's settings. They are loaded once
// and read-only afterwards.
func (m *Mediator) Settings(ctx context.Context) (settings.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.settings != nil {
		return *m.settings, nil
	}
	s, err := m.requester.GetSettings(ctx)
	if err != nil {
		return settings.Settings{}, err
	}
	m.settings = &s
	return s, nil
}

func (m *Mediator) ready(ctx context.Context) bool {
	s, err := m.Settings(ctx)
	if err != nil {
		m.logger.Debug("Settings unavailable, skipping page fetch", zap.Error(err))
		return false
	}
	return s.Enabled && s.Configured()
}

// FetchContent returns the sanitized text of url, or "" when the page is
// unreachable, answers with a non-2xx status or is not text.
func (m *Mediator) FetchContent(ctx context.Context, url string) string {
	resp, err := m.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		m.logger.Debug("Page fetch failed", zap.String("url", url), zap.Error(err))
		m.record("error")
		return ""
	}
	raw := resp.RawBody()
	defer raw.Close()

	if !resp.IsSuccess() {
		m.logger.Debug("Page fetch returned status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode()),
		)
		m.record("status")
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(raw, m.maxBytes))
	if err != nil {
		m.record("error")
		return ""
	}

	contentType := resp.Header().Get("Content-Type")
	if !sanitizer.IsReadable(body, contentType) {
		m.record("unreadable")
		return ""
	}

	m.record("ok")
	return sanitizer.SanitizeBytes(body, contentType)
}

func (m *Mediator) record(outcome string) {
	if m.metrics != nil {
		m.metrics.RecordPageFetch(outcome)
	}
}
