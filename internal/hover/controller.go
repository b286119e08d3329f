package hover

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/arcks/internal/infrastructure/logging"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/arcks/internal/page"
	"github.com/GriffinCanCode/arcks/internal/popup"
	"github.com/GriffinCanCode/arcks/internal/settings"
	"github.com/GriffinCanCode/arcks/internal/shared/id"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

const (
	// LeaveGrace is how long a popup survives after the pointer leaves its link.
	LeaveGrace = 100 * time.Millisecond
	// FadeDuration is the hide animation length.
	FadeDuration = 200 * time.Millisecond
)

// Summarizer produces the summary for a URL. It must always return; errors
// are reported as error results.
type Summarizer interface {
	Summarize(ctx context.Context, url string) summary.Result
}

// SummarizerFunc adapts a function to Summarizer.
type SummarizerFunc func(ctx context.Context, url string) summary.Result

func (f SummarizerFunc) Summarize(ctx context.Context, url string) summary.Result {
	return f(ctx, url)
}

// Session is the hover that owns the current popup.
type Session struct {
	Link      *page.Link
	URL       string
	StartedAt time.Time
	Token     id.SessionToken
}

// Config wires a Controller.
type Config struct {
	Settings    settings.Settings
	Eligibility page.Eligibility
	Document    popup.Document
	Summarizer  Summarizer
	Clock       Clock
	PopupSize   popup.Size
	Logger      *logging.Logger
	Metrics     *monitoring.Metrics
	// Observer, when set, receives every transition. It runs under the
	// controller lock and must not call back into the controller.
	Observer func(Event)
}

// Controller tracks the hovered link and the popup of one page.
type Controller struct {
	cfg     Config
	logger  *logging.Logger
	metrics *monitoring.Metrics

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	closed   bool
	tracked  *page.Link
	debounce Timer
	pending  uint64
	grace    Timer
	fade     Timer
	session  *Session
	view     *popup.View
	hovered  bool
}

// New creates a controller. Settings are taken as given for the life of the
// controller.
func New(cfg Config) *Controller {
	if cfg.Clock == nil {
		cfg.Clock = RealClock()
	}
	if cfg.PopupSize == (popup.Size{}) {
		cfg.PopupSize = popup.DefaultSize()
	}
	if cfg.Eligibility.Containers == "" {
		cfg.Eligibility = page.DefaultEligibility()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		cfg:     cfg,
		logger:  logger.Named("hover"),
		metrics: cfg.Metrics,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// PointerEnterLink starts or restarts the hover debounce for link.
func (c *Controller) PointerEnterLink(link *page.Link) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.cfg.Settings.Enabled {
		return
	}
	if !c.cfg.Eligibility.Eligible(link) {
		return
	}
	if c.tracked != nil && c.tracked.Href == link.Href {
		return
	}

	c.tracked = link
	c.stopDebounceLocked()
	c.pending++
	gen := c.pending
	delay := time.Duration(c.cfg.Settings.HoverDelay) * time.Millisecond
	c.debounce = c.cfg.Clock.AfterFunc(delay, func() { c.fire(link, gen) })
	c.emitLocked(EventPending, link.Href, "")
}

// PointerLeaveLink cancels a pending hover and schedules a hide of the
// current popup after LeaveGrace.
func (c *Controller) PointerLeaveLink(link *page.Link) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.stopDebounceLocked()
	c.tracked = nil

	if c.grace != nil {
		c.grace.Stop()
	}
	view := c.view
	c.grace = c.cfg.Clock.AfterFunc(LeaveGrace, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.grace = nil
		c.requestHideLocked(view)
	})
}

// PointerEnterPopup marks the popup as hovered and cancels a running fade.
func (c *Controller) PointerEnterPopup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.view == nil {
		return
	}
	c.hovered = true
	if c.fade != nil {
		c.fade.Stop()
		c.fade = nil
	}
	if c.view.CancelClose() {
		c.emitLocked(EventRestore, c.view.URL, c.view.Token)
	}
}

// PointerLeavePopup clears the hovered flag and hides the popup at once.
func (c *Controller) PointerLeavePopup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.hovered = false
	c.requestHideLocked(c.view)
}

// fire opens the popup for link once the debounce elapses.
func (c *Controller) fire(link *page.Link, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.pending || c.debounce == nil {
		return
	}
	c.debounce = nil

	c.destroyLocked()

	s := &Session{
		Link:      link,
		URL:       link.Href,
		StartedAt: c.cfg.Clock.Now(),
		Token:     id.NewSessionToken(),
	}
	c.session = s
	c.hovered = false
	c.view = popup.Open(c.cfg.Document, s.Token, s.URL, link.Rect, c.cfg.PopupSize)
	if c.metrics != nil {
		c.metrics.IncPopupsOpened()
	}
	c.emitLocked(EventOpen, s.URL, s.Token)
	c.logger.Debug("Popup opened",
		zap.String("url", s.URL),
		zap.String("token", s.Token.String()),
	)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		res := c.cfg.Summarizer.Summarize(c.ctx, s.URL)
		c.deliver(s.Token, res)
	}()
}

// deliver applies a summary result if its session still owns the popup.
func (c *Controller) deliver(token id.SessionToken, res summary.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view == nil || c.view.Token != token || !c.view.Show(res) {
		if c.metrics != nil {
			c.metrics.IncStaleResponses()
		}
		c.emitLocked(EventStale, "", token)
		c.logger.Debug("Dropped stale summary", zap.String("token", token.String()))
		return
	}

	outcome := EventContent
	if res.IsError() {
		outcome = EventError
	}
	if c.metrics != nil {
		c.metrics.RecordSummaryOutcome(string(outcome))
	}
	c.emitLocked(outcome, c.view.URL, token)
}

// requestHideLocked fades out view if it is still the current popup and the
// pointer is not over it.
func (c *Controller) requestHideLocked(view *popup.View) {
	if c.hovered || view == nil || c.view != view {
		return
	}
	if view.State() == popup.StateClosing {
		return
	}

	view.BeginClose()
	c.emitLocked(EventClosing, view.URL, view.Token)
	c.fade = c.cfg.Clock.AfterFunc(FadeDuration, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.view == view && view.State() == popup.StateClosing {
			c.fade = nil
			c.destroyLocked()
		}
	})
}

// destroyLocked removes the current popup immediately.
func (c *Controller) destroyLocked() {
	if c.fade != nil {
		c.fade.Stop()
		c.fade = nil
	}
	if c.view == nil {
		return
	}
	v := c.view
	c.view = nil
	c.session = nil
	c.hovered = false
	v.Destroy()
	c.emitLocked(EventDestroy, v.URL, v.Token)
}

func (c *Controller) stopDebounceLocked() {
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
	c.pending++
}

// Phase returns the current state of the machine.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != nil {
		switch c.view.State() {
		case popup.StateLoading:
			return PhaseLoading
		case popup.StateContent:
			return PhaseContent
		case popup.StateError:
			return PhaseError
		case popup.StateClosing:
			return PhaseClosing
		}
	}
	if c.debounce != nil {
		return PhasePending
	}
	return PhaseIdle
}

// Session returns a copy of the session owning the popup, if any.
func (c *Controller) Session() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Tracked returns the link currently under the pointer, if any.
func (c *Controller) Tracked() *page.Link {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracked
}

// Wait blocks until every dispatched summary request has been delivered.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels timers and in-flight requests and removes the popup.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopDebounceLocked()
	if c.grace != nil {
		c.grace.Stop()
		c.grace = nil
	}
	c.destroyLocked()
	c.tracked = nil
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}
