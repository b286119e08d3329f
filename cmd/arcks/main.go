// Command arcks runs the hover-preview client core from a terminal.
//
// Usage:
//
//	arcks options [-delay ms] [-enabled=true|false] [-endpoint url]
//	arcks preview [-json] <url>
//	arcks scan [-base url] <page.html>
//	arcks replay [-live] <script.yaml>
//
// Configuration comes from the environment (ARCKS_SETTINGS_PATH,
// ARCKS_EXTENSION_ORIGIN, PAGE_FETCH_TIMEOUT, RELAY_TIMEOUT, LOG_LEVEL).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/arcks/internal/background"
	"github.com/GriffinCanCode/arcks/internal/bridge"
	"github.com/GriffinCanCode/arcks/internal/hover"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/config"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/logging"
	"github.com/GriffinCanCode/arcks/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/arcks/internal/mediator"
	"github.com/GriffinCanCode/arcks/internal/page"
	"github.com/GriffinCanCode/arcks/internal/replay"
	"github.com/GriffinCanCode/arcks/internal/settings"
)

const usage = `usage: arcks <command> [flags] [args]

commands:
  options   show or change settings
  preview   summarize one URL through the configured relay
  scan      list the links of a saved results page that get previews
  replay    play a scripted hover session
`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewFromLevel(cfg.Logging.Level, cfg.Logging.Development)
	defer func() { _ = logger.Sync() }()

	os.Exit(run(ctx, cfg, logger, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, cfg *config.ClientConfig, logger *logging.Logger, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	app := &cli{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}

	var err error
	switch args[0] {
	case "options":
		err = app.options(ctx, args[1:])
	case "preview":
		err = app.preview(ctx, args[1:])
	case "scan":
		err = app.scan(args[1:])
	case "replay":
		err = app.replay(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintf(stderr, "arcks %s: %v\n", args[0], err)
		return 1
	}
}

type cli struct {
	cfg    *config.ClientConfig
	logger *logging.Logger
	stdout io.Writer
	stderr io.Writer
}

func (a *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *cli) options(ctx context.Context, args []string) error {
	fs := a.flags("options")
	delay := fs.String("delay", "", "hover delay in milliseconds (200-3000)")
	enabled := fs.Bool("enabled", true, "enable previews")
	endpoint := fs.String("endpoint", "", "relay endpoint URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store := settings.NewFileStore(a.cfg.SettingsPath)
	opts := settings.NewOptions(store)

	form, err := opts.Form(ctx)
	if err != nil {
		a.logger.Warn("Settings file unreadable, showing defaults", zap.String("path", store.Path()), zap.Error(err))
		d := settings.Defaults()
		form = settings.Form{
			HoverDelay:    strconv.Itoa(d.HoverDelay),
			Enabled:       d.Enabled,
			ProxyEndpoint: d.ProxyEndpoint,
		}
	}

	changed := false
	fs.Visit(func(f *flag.Flag) {
		changed = true
		switch f.Name {
		case "delay":
			form.HoverDelay = *delay
		case "enabled":
			form.Enabled = *enabled
		case "endpoint":
			form.ProxyEndpoint = *endpoint
		}
	})

	if changed {
		submitErr := opts.Submit(ctx, form)
		msg, _ := opts.Status()
		fmt.Fprintln(a.stdout, msg)
		if submitErr != nil {
			return submitErr
		}
	}

	fmt.Fprintf(a.stdout, "settings: %s\n", store.Path())
	fmt.Fprintf(a.stdout, "  hoverDelay:    %s\n", form.HoverDelay)
	fmt.Fprintf(a.stdout, "  enabled:       %s\n", strconv.FormatBool(form.Enabled))
	fmt.Fprintf(a.stdout, "  proxyEndpoint: %s\n", form.ProxyEndpoint)
	return nil
}

// pipeline wires the mediator to a background handler over the bridge, the
// way the rendering context reaches the privileged one.
func (a *cli) pipeline(ctx context.Context, metrics *monitoring.Metrics) (*mediator.Mediator, func()) {
	store := settings.NewFileStore(a.cfg.SettingsPath)
	bg := background.New(store, background.Config{
		Origin:    a.cfg.ExtensionOrigin,
		Timeout:   a.cfg.RelayTimeout,
		UserAgent: a.cfg.UserAgent,
	}, a.logger)

	ctx, cancel := context.WithCancel(ctx)
	ch := bridge.New()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ch.Serve(ctx, bg)
	}()

	med := mediator.New(bridge.NewClient(ch), mediator.Config{
		Timeout:   a.cfg.PageFetchTimeout,
		UserAgent: a.cfg.UserAgent,
	}, a.logger, metrics)

	return med, func() {
		ch.Close()
		cancel()
		<-done
	}
}

func (a *cli) preview(ctx context.Context, args []string) error {
	fs := a.flags("preview")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || !page.ValidURL(fs.Arg(0)) {
		fmt.Fprintln(a.stderr, "usage: arcks preview [-json] <http(s) url>")
		return errUsage
	}

	med, stop := a.pipeline(ctx, nil)
	defer stop()

	res := med.Summarize(ctx, fs.Arg(0))
	if *asJSON {
		out, err := sonic.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, string(out))
		return nil
	}

	if res.IsError() {
		fmt.Fprintf(a.stdout, "error: %s\n", res.Error)
		return nil
	}
	fmt.Fprintln(a.stdout, res.Title)
	fmt.Fprintln(a.stdout, res.Text())
	return nil
}

func (a *cli) scan(args []string) error {
	fs := a.flags("scan")
	base := fs.String("base", "https://www.google.com/search", "URL the page was loaded from")
	all := fs.Bool("all", false, "list ineligible links too")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: arcks scan [-base url] [-all] <page.html>")
		return errUsage
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := page.Parse(f, *base)
	if err != nil {
		return err
	}

	rules := page.DefaultEligibility()
	eligible := 0
	for _, link := range doc.Links() {
		ok := rules.Eligible(link)
		if ok {
			eligible++
		}
		if !ok && !*all {
			continue
		}
		mark := " "
		if ok {
			mark = "*"
		}
		fmt.Fprintf(a.stdout, "%s %3d  %s  %s\n", mark, link.Index, link.Href, link.Text)
	}
	fmt.Fprintf(a.stdout, "%d of %d links eligible\n", eligible, len(doc.Links()))
	return nil
}

func (a *cli) replay(ctx context.Context, args []string) error {
	fs := a.flags("replay")
	live := fs.Bool("live", false, "fetch and summarize for real instead of using the script's answers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "usage: arcks replay [-live] <script.yaml>")
		return errUsage
	}

	metrics := monitoring.NewMetrics()
	opts := replay.Options{Logger: a.logger, Metrics: metrics}
	if *live {
		med, stop := a.pipeline(ctx, metrics)
		defer stop()
		saved, err := med.Settings(ctx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		opts.Settings = &saved
		opts.Summarizer = hover.SummarizerFunc(med.Summarize)
	}

	report, err := replay.RunFile(fs.Arg(0), opts)
	if err != nil {
		return err
	}
	report.Print(a.stdout)
	return nil
}
