package bridge

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/arcks/internal/settings"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

type stubHandler struct {
	mu      sync.Mutex
	s       settings.Settings
	err     error
	block   chan struct{}
	summary []string
}

func (h *stubHandler) GetSettings(ctx context.Context) (settings.Settings, error) {
	return h.s, h.err
}

func (h *stubHandler) GetSummary(ctx context.Context, url, content string) summary.Result {
	if h.block != nil {
		<-h.block
	}
	h.mu.Lock()
	h.summary = append(h.summary, url+"|"+content)
	h.mu.Unlock()
	return summary.Success("T", "S for "+url)
}

func serve(t *testing.T, h Handler) (*Channel, *Client) {
	t.Helper()
	ch := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ch.Serve(ctx, h) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return ch, NewClient(ch)
}

func TestGetSettings(t *testing.T) {
	want := settings.Settings{HoverDelay: 1000, Enabled: true, ProxyEndpoint: "https://relay.example"}
	_, client := serve(t, &stubHandler{s: want})

	got, err := client.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetSettingsError(t *testing.T) {
	boom := errors.New("store unavailable")
	_, client := serve(t, &stubHandler{err: boom})

	_, err := client.GetSettings(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestGetSummary(t *testing.T) {
	h := &stubHandler{}
	_, client := serve(t, h)

	res := client.GetSummary(context.Background(), "https://go.dev/", "text")
	assert.Equal(t, summary.Success("T", "S for https://go.dev/"), res)
	assert.Equal(t, []string{"https://go.dev/|text"}, h.summary)
}

func TestUnknownAction(t *testing.T) {
	ch, _ := serve(t, &stubHandler{})

	r, err := ch.Send(context.Background(), Message{Action: "reboot"})
	require.NoError(t, err)
	assert.ErrorIs(t, r.Err, ErrUnknownAction)
}

func TestSendHonoursContext(t *testing.T) {
	h := &stubHandler{block: make(chan struct{})}
	_, client := serve(t, h)
	defer close(h.block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res := client.GetSummary(ctx, "https://go.dev/", "")
	assert.True(t, res.IsError())
	assert.Contains(t, res.Error, context.DeadlineExceeded.Error())
}

func TestClosedChannel(t *testing.T) {
	ch := New()
	ch.Close()
	ch.Close()

	_, err := ch.Send(context.Background(), Message{Action: ActionGetSettings})
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, ch.Serve(context.Background(), &stubHandler{}))
}
