package hover

import (
	"time"

	"github.com/GriffinCanCode/arcks/internal/shared/id"
)

// Phase is the state of the hover machine as a whole.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhasePending Phase = "pending"
	PhaseLoading Phase = "loading"
	PhaseContent Phase = "content"
	PhaseError   Phase = "error"
	PhaseClosing Phase = "closing"
)

// EventKind names a transition.
type EventKind string

const (
	EventPending EventKind = "pending"
	EventOpen    EventKind = "open"
	EventContent EventKind = "content"
	EventError   EventKind = "error"
	EventStale   EventKind = "stale"
	EventClosing EventKind = "closing"
	EventRestore EventKind = "restore"
	EventDestroy EventKind = "destroy"
)

// Event records one transition.
type Event struct {
	At    time.Time
	Kind  EventKind
	URL   string
	Token id.SessionToken
}

func (c *Controller) emitLocked(kind EventKind, url string, token id.SessionToken) {
	if c.cfg.Observer == nil {
		return
	}
	c.cfg.Observer(Event{
		At:    c.cfg.Clock.Now(),
		Kind:  kind,
		URL:   url,
		Token: token,
	})
}
