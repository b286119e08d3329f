package relay

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/arcks/internal/infrastructure/logging"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

// ErrUpstream marks failures of the summarization API.
var ErrUpstream = errors.New("upstream failure")

// Generator is the summarization API.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]string, error)
}

// upstreamError keeps the upstream message intact while matching ErrUpstream.
type upstreamError struct {
	err error
}

func (e *upstreamError) Error() string   { return e.err.Error() }
func (e *upstreamError) Unwrap() []error { return []error{ErrUpstream, e.err} }

// Relay summarizes pages through a Generator.
type Relay struct {
	gen     Generator
	breaker *resilience.Breaker
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// New creates a relay. metrics may be nil.
func New(gen Generator, logger *logging.Logger, metrics *monitoring.Metrics) *Relay {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Relay{
		gen:     gen,
		logger:  logger.Named("relay"),
		metrics: metrics,
	}
	r.breaker = resilience.New("gemini", resilience.Settings{
		Threshold: 5,
		Cooldown:  30 * time.Second,
		IsFailure: func(err error) bool {
			return err != nil && !errors.Is(err, context.Canceled)
		},
		OnStateChange: r.onStateChange,
	})
	return r
}

// WithBreaker replaces the upstream breaker.
func (r *Relay) WithBreaker(b *resilience.Breaker) *Relay {
	r.breaker = b
	return r
}

// Breaker returns the upstream breaker.
func (r *Relay) Breaker() *resilience.Breaker {
	return r.breaker
}

// Summarize asks the upstream for a summary of url and normalizes the answer.
// Errors wrap ErrUpstream, except ErrInvalidURL.
func (r *Relay) Summarize(ctx context.Context, url, content string) (summary.Result, error) {
	prompt := BuildPrompt(url, content)

	var timer *monitoring.Timer
	if r.metrics != nil {
		timer = monitoring.NewTimer(r.metrics)
	}

	parts, err := resilience.Do(r.breaker, func() ([]string, error) {
		return r.gen.Generate(ctx, prompt)
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, resilience.ErrCircuitOpen) {
			outcome = "rejected"
		}
		if timer != nil {
			timer.Stop(outcome)
		}
		r.logger.Warn("Upstream call failed",
			zap.String("url", url),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return summary.Result{}, &upstreamError{err: err}
	}
	if timer != nil {
		timer.Stop("ok")
	}

	res, fallback, err := Normalize(url, parts)
	if err != nil {
		return summary.Result{}, err
	}
	if fallback != FallbackNone {
		r.logger.Debug("Answer normalized by fallback", zap.String("url", url), zap.String("kind", fallback))
		if r.metrics != nil {
			r.metrics.RecordFallback(fallback)
		}
	}
	return res, nil
}

func (r *Relay) onStateChange(name string, from, to resilience.State) {
	r.logger.Info("Circuit breaker state changed",
		zap.String("breaker", name),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)
	if r.metrics != nil {
		r.metrics.SetBreakerState(int(to))
	}
}
