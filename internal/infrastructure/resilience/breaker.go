package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned without calling the guarded function while the
// breaker is open, or while its single half-open trial is in flight.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the breaker position. The numeric values are published as the
// breaker gauge.
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Settings tunes a Breaker. Zero values pick the defaults noted per field.
type Settings struct {
	// Threshold is the consecutive failure count that opens the breaker (5).
	Threshold int
	// Cooldown is how long the breaker stays open before a trial call (30s).
	Cooldown time.Duration
	// IsFailure decides which errors count against the streak (any non-nil).
	IsFailure func(err error) bool
	// OnStateChange observes transitions. It runs with the breaker locked
	// and must not call back into it.
	OnStateChange func(name string, from, to State)
	// Now is the clock (time.Now).
	Now func() time.Time
}

// Breaker fails calls fast after Threshold consecutive failures. After
// Cooldown one trial call is let through: success closes the breaker and
// failure opens it for another Cooldown. It never retries.
type Breaker struct {
	name string
	s    Settings

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	trial    bool
}

func New(name string, s Settings) *Breaker {
	if s.Threshold <= 0 {
		s.Threshold = 5
	}
	if s.Cooldown <= 0 {
		s.Cooldown = 30 * time.Second
	}
	if s.IsFailure == nil {
		s.IsFailure = func(err error) bool { return err != nil }
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return &Breaker{name: name, s: s}
}

// State reports the current position, moving an expired open breaker to
// half-open.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tick()
	return b.state
}

// Failures is the current consecutive failure streak.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Do runs fn unless the breaker rejects the call. A panic in fn counts as a
// failure and is re-raised.
func Do[T any](b *Breaker, fn func() (T, error)) (result T, err error) {
	if err := b.admit(); err != nil {
		return result, err
	}

	failed := true
	defer func() { b.record(failed) }()

	result, err = fn()
	failed = b.s.IsFailure(err)
	return result, err
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tick()
	switch b.state {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.trial {
			return ErrCircuitOpen
		}
		b.trial = true
	}
	return nil
}

func (b *Breaker) record(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.trial = false
		if failed {
			b.open()
		} else {
			b.failures = 0
			b.move(StateClosed)
		}
		return
	}
	// A call admitted before the breaker opened finishing late leaves it as is.
	if b.state != StateClosed {
		return
	}

	if !failed {
		b.failures = 0
		return
	}
	b.failures++
	if b.failures >= b.s.Threshold {
		b.open()
	}
}

func (b *Breaker) tick() {
	if b.state == StateOpen && b.s.Now().Sub(b.openedAt) >= b.s.Cooldown {
		b.move(StateHalfOpen)
	}
}

func (b *Breaker) open() {
	b.openedAt = b.s.Now()
	b.move(StateOpen)
}

func (b *Breaker) move(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	if b.s.OnStateChange != nil {
		b.s.OnStateChange(b.name, from, to)
	}
}
