package bridge

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/arcks/internal/settings"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

// Client is the rendering-context end of a Channel.
type Client struct {
	ch *Channel
}

// NewClient creates a client on ch.
func NewClient(ch *Channel) *Client {
	return &Client{ch: ch}
}

// GetSettings asks the privileged context for the current settings.
func (c *Client) GetSettings(ctx context.Context) (settings.Settings, error) {
	r, err := c.ch.Send(ctx, Message{Action: ActionGetSettings})
	if err != nil {
		return settings.Settings{}, fmt.Errorf("getSettings: %w", err)
	}
	if r.Err != nil {
		return settings.Settings{}, r.Err
	}
	if r.Settings == nil {
		return settings.Settings{}, fmt.Errorf("getSettings: empty reply")
	}
	return *r.Settings, nil
}

// GetSummary asks the privileged context to summarize url. Transport
// failures come back as error results.
func (c *Client) GetSummary(ctx context.Context, url, content string) summary.Result {
	r, err := c.ch.Send(ctx, Message{Action: ActionGetSummary, URL: url, Content: content})
	if err != nil {
		return summary.Failure(err.Error())
	}
	if r.Err != nil {
		return summary.Failure(r.Err.Error())
	}
	if r.Result == nil {
		return summary.Failure(summary.PreviewFailed)
	}
	return *r.Result
}
