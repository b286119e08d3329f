package mediator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/arcks/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/arcks/internal/settings"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

type recordingRequester struct {
	mu            sync.Mutex
	calls         []summary.Request
	res           summary.Result
	settings      *settings.Settings
	settingsErr   error
	settingsCalls int
}

func (r *recordingRequester) GetSettings(ctx context.Context) (settings.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settingsCalls++
	if r.settingsErr != nil {
		return settings.Settings{}, r.settingsErr
	}
	if r.settings != nil {
		return *r.settings, nil
	}
	s := settings.Defaults()
	s.ProxyEndpoint = "https://relay.example/"
	return s, nil
}

func (r *recordingRequester) GetSummary(ctx context.Context, url, content string) summary.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, summary.Request{URL: url, Content: content})
	return r.res
}

func newMediator(req Requester) *Mediator {
	return New(req, Config{Timeout: time.Second}, nil, monitoring.NewMetrics())
}

func TestSummarizeSanitizesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Cookie"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><script>evil()</script></head><body><h1>Go</h1><p>Build   simple software.</p></body></html>`))
	}))
	defer srv.Close()

	req := &recordingRequester{res: summary.Success("Go", "A language.")}
	res := newMediator(req).Summarize(context.Background(), srv.URL)

	assert.Equal(t, summary.Success("Go", "A language."), res)
	require.Len(t, req.calls, 1)
	assert.Equal(t, srv.URL, req.calls[0].URL)
	assert.Equal(t, "Go Build simple software.", req.calls[0].Content)
}

func TestSummarizeWithoutContent(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "<p>missing</p>", http.StatusNotFound)
			},
		},
		{
			name: "pdf",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/pdf")
				_, _ = w.Write([]byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			req := &recordingRequester{res: summary.Success("x", "y")}
			newMediator(req).Summarize(context.Background(), srv.URL)

			require.Len(t, req.calls, 1)
			assert.Empty(t, req.calls[0].Content)
		})
	}
}

func TestSummarizeUnreachablePage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	req := &recordingRequester{res: summary.Failure("relay down")}
	res := newMediator(req).Summarize(context.Background(), url)

	assert.Equal(t, "relay down", res.Error)
	require.Len(t, req.calls, 1)
	assert.Empty(t, req.calls[0].Content)
}

func TestFetchContentBoundsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>" + strings.Repeat("a", 100) + strings.Repeat("b", 100) + "</p>"))
	}))
	defer srv.Close()

	m := New(&recordingRequester{}, Config{Timeout: time.Second, MaxPageBytes: 103}, nil, nil)
	assert.Equal(t, strings.Repeat("a", 100), m.FetchContent(context.Background(), srv.URL))
}

func TestSummarizeSkipsFetchWithoutConfiguration(t *testing.T) {
	unconfigured := settings.Defaults()
	disabled := settings.Defaults()
	disabled.ProxyEndpoint = "https://relay.example/"
	disabled.Enabled = false

	tests := []struct {
		name string
		req  *recordingRequester
	}{
		{name: "no endpoint", req: &recordingRequester{settings: &unconfigured}},
		{name: "disabled", req: &recordingRequester{settings: &disabled}},
		{name: "settings unavailable", req: &recordingRequester{settingsErr: errors.New("bridge closed")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				_, _ = w.Write([]byte("<p>page</p>"))
			}))
			defer srv.Close()

			tt.req.res = summary.Failure("Worker URL not configured. Set it in extension options.")
			res := newMediator(tt.req).Summarize(context.Background(), srv.URL)

			assert.True(t, res.IsError())
			assert.Zero(t, hits.Load())
			require.Len(t, tt.req.calls, 1)
			assert.Empty(t, tt.req.calls[0].Content)
		})
	}
}

func TestSettingsLoadedOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<p>page</p>"))
	}))
	defer srv.Close()

	req := &recordingRequester{res: summary.Success("x", "y")}
	m := newMediator(req)
	m.Summarize(context.Background(), srv.URL)
	m.Summarize(context.Background(), srv.URL)

	s, err := m.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://relay.example/", s.ProxyEndpoint)
	assert.Equal(t, 1, req.settingsCalls)
	require.Len(t, req.calls, 2)
	assert.Equal(t, "page", req.calls[1].Content)
}
