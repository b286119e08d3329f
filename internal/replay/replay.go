package replay

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/arcks/internal/hover"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/logging"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/arcks/internal/page"
	"github.com/GriffinCanCode/arcks/internal/popup"
	"github.com/GriffinCanCode/arcks/internal/settings"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

// Epoch is the manual clock's start time.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Options configures a run.
type Options struct {
	// Summarizer answers hovers; nil means the script's canned summaries.
	Summarizer hover.Summarizer
	// Settings are the saved settings the script's values apply on top of;
	// nil means the defaults.
	Settings *settings.Settings
	Logger     *logging.Logger
	Metrics    *monitoring.Metrics
}

// Report is the outcome of a run.
type Report struct {
	Events  []hover.Event
	Phase   hover.Phase
	Popups  []string
	Created int
	MaxLive int
}

// Print writes the events with their offset from Epoch, then the live
// popups.
func (r *Report) Print(w io.Writer) {
	for _, ev := range r.Events {
		line := fmt.Sprintf("+%-8s %-8s %s", ev.At.Sub(Epoch), ev.Kind, ev.URL)
		if !ev.Token.IsZero() {
			line += " " + ev.Token.String()
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "phase: %s, popups created: %d, max live: %d\n", r.Phase, r.Created, r.MaxLive)
	for i, html := range r.Popups {
		fmt.Fprintf(w, "popup %d:\n%s\n", i+1, html)
	}
}

// cannedSummarizer answers from the script; unknown URLs fail.
type cannedSummarizer map[string]Canned

func (c cannedSummarizer) Summarize(ctx context.Context, url string) summary.Result {
	if answer, ok := c[url]; ok {
		return answer.Result()
	}
	return summary.Failure(summary.PreviewFailed)
}

// RunFile loads a script, parses its page and runs it.
func RunFile(path string, opts Options) (*Report, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(s.Page)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	doc, err := page.Parse(f, s.Base)
	if err != nil {
		return nil, err
	}
	return Run(s, doc, opts)
}

// Run plays the script against doc.
func Run(s *Script, doc *page.Document, opts Options) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	base := settings.Defaults()
	if opts.Settings != nil {
		base = *opts.Settings
	}
	cfgSettings, err := s.ResolvedSettingsFrom(base)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	sum := opts.Summarizer
	if sum == nil {
		sum = cannedSummarizer(s.Summaries)
	}

	var (
		mu     sync.Mutex
		events []hover.Event
	)
	clock := hover.NewManualClock(Epoch)
	screen := popup.NewMemoryDocument(s.ResolvedViewport())
	ctrl := hover.New(hover.Config{
		Settings:    cfgSettings,
		Eligibility: page.DefaultEligibility(),
		Document:    screen,
		Summarizer:  sum,
		Clock:       clock,
		Logger:      logger,
		Metrics:     opts.Metrics,
		Observer: func(ev hover.Event) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	})
	defer ctrl.Close()

	for i, step := range s.Steps {
		if err := apply(ctrl, clock, doc, step); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
		// Requested summaries land before the next step.
		ctrl.Wait()
		logger.Debug("Replayed step", zap.Int("step", i+1), zap.Stringer("action", step), zap.String("phase", string(ctrl.Phase())))
	}

	report := &Report{
		Phase:   ctrl.Phase(),
		Created: screen.Created(),
		MaxLive: screen.MaxLive(),
	}
	for _, root := range screen.Live() {
		report.Popups = append(report.Popups, root.HTML())
	}
	mu.Lock()
	report.Events = append([]hover.Event(nil), events...)
	mu.Unlock()
	return report, nil
}

func apply(ctrl *hover.Controller, clock *hover.ManualClock, doc *page.Document, step Step) error {
	switch {
	case step.Enter != "":
		link, ok := doc.FindHref(step.Enter)
		if !ok {
			return fmt.Errorf("no link %q on page", step.Enter)
		}
		ctrl.PointerEnterLink(link)
	case step.Leave != "":
		link, ok := doc.FindHref(step.Leave)
		if !ok {
			return fmt.Errorf("no link %q on page", step.Leave)
		}
		ctrl.PointerLeaveLink(link)
	case step.EnterPopup:
		ctrl.PointerEnterPopup()
	case step.LeavePopup:
		ctrl.PointerLeavePopup()
	case step.Wait != "":
		d, err := time.ParseDuration(step.Wait)
		if err != nil {
			return err
		}
		clock.Advance(d)
	}
	return nil
}
