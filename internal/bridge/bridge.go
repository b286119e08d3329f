package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/arcks/internal/settings"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrClosed        = errors.New("bridge closed")
)

// Action names a request type.
type Action string

const (
	ActionGetSettings Action = "getSettings"
	ActionGetSummary  Action = "getSummary"
)

// Message is a request sent across the bridge.
type Message struct {
	Action  Action `json:"action"`
	URL     string `json:"url,omitempty"`
	Content string `json:"content,omitempty"`
}

// Reply answers a Message. Exactly one of Settings, Result or Err is set.
type Reply struct {
	Settings *settings.Settings
	Result   *summary.Result
	Err      error
}

// Handler serves bridge requests in the privileged context.
type Handler interface {
	GetSettings(ctx context.Context) (settings.Settings, error)
	GetSummary(ctx context.Context, url, content string) summary.Result
}

type envelope struct {
	ctx   context.Context
	msg   Message
	reply chan Reply
}

// Channel connects one or more clients to one server.
type Channel struct {
	requests chan envelope
	done     chan struct{}
	once     sync.Once
}

// New creates a channel.
func New() *Channel {
	return &Channel{
		requests: make(chan envelope),
		done:     make(chan struct{}),
	}
}

// Serve answers requests with h until ctx is cancelled or the channel is
// closed. Requests are handled concurrently.
func (c *Channel) Serve(ctx context.Context, h Handler) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return nil
		case env := <-c.requests:
			wg.Add(1)
			go func() {
				defer wg.Done()
				env.reply <- dispatch(env.ctx, h, env.msg)
			}()
		}
	}
}

// Close stops Serve and fails further requests.
func (c *Channel) Close() {
	c.once.Do(func() { close(c.done) })
}

// Send delivers msg and waits for its reply.
func (c *Channel) Send(ctx context.Context, msg Message) (Reply, error) {
	env := envelope{ctx: ctx, msg: msg, reply: make(chan Reply, 1)}

	select {
	case c.requests <- env:
	case <-c.done:
		return Reply{}, ErrClosed
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}

	select {
	case r := <-env.reply:
		return r, nil
	case <-ctx.Done():
		return Reply{}, ctx.Err()
	}
}

func dispatch(ctx context.Context, h Handler, msg Message) Reply {
	switch msg.Action {
	case ActionGetSettings:
		s, err := h.GetSettings(ctx)
		if err != nil {
			return Reply{Err: err}
		}
		return Reply{Settings: &s}
	case ActionGetSummary:
		res := h.GetSummary(ctx, msg.URL, msg.Content)
		return Reply{Result: &res}
	default:
		return Reply{Err: fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action)}
	}
}
