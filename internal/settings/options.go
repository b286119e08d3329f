package settings

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Status messages of the options surface.
const (
	StatusSaved         = "Settings saved!"
	StatusInvalidDelay  = "Hover delay must be between 200-3000ms"
	StatusInvalidTarget = "Proxy endpoint must be an http(s) URL"
	StatusDuration      = 3 * time.Second
)

// StatusKind classifies a status message.
type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Form is the raw input of the options surface.
type Form struct {
	HoverDelay    string
	Enabled       bool
	ProxyEndpoint string
}

// Options reads and writes settings on behalf of the user and keeps the
// last status message visible for StatusDuration.
type Options struct {
	store Store
	now   func() time.Time

	mu      sync.Mutex
	message string
	kind    StatusKind
	until   time.Time
}

// NewOptions creates an options surface over store.
func NewOptions(store Store) *Options {
	return &Options{store: store, now: time.Now}
}

// WithClock overrides the clock used for status expiry.
func (o *Options) WithClock(now func() time.Time) *Options {
	o.now = now
	return o
}

// Form returns the current settings as form input.
func (o *Options) Form(ctx context.Context) (Form, error) {
	s, err := o.store.Load(ctx)
	if err != nil {
		return Form{}, err
	}
	return Form{
		HoverDelay:    strconv.Itoa(s.HoverDelay),
		Enabled:       s.Enabled,
		ProxyEndpoint: s.ProxyEndpoint,
	}, nil
}

// Submit validates the form and saves it. Nothing is written when validation
// fails.
func (o *Options) Submit(ctx context.Context, f Form) error {
	delay, err := strconv.Atoi(strings.TrimSpace(f.HoverDelay))
	if err != nil {
		o.show(StatusInvalidDelay, StatusError)
		return ErrInvalidHoverDelay
	}

	s := Settings{
		HoverDelay:    delay,
		Enabled:       f.Enabled,
		ProxyEndpoint: strings.TrimSpace(f.ProxyEndpoint),
	}
	if err := s.Validate(); err != nil {
		if errors.Is(err, ErrInvalidEndpoint) {
			o.show(StatusInvalidTarget, StatusError)
		} else {
			o.show(StatusInvalidDelay, StatusError)
		}
		return err
	}

	if err := o.store.Save(ctx, s); err != nil {
		o.show(err.Error(), StatusError)
		return err
	}

	o.show(StatusSaved, StatusSuccess)
	return nil
}

// Status returns the visible status message, or "" once it has expired.
func (o *Options) Status() (string, StatusKind) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.message == "" || !o.now().Before(o.until) {
		return "", ""
	}
	return o.message, o.kind
}

func (o *Options) show(msg string, kind StatusKind) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.message = msg
	o.kind = kind
	o.until = o.now().Add(StatusDuration)
}
