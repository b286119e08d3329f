package client

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDoesNotRetryOrSendCookies(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Empty(t, r.Header.Get("Cookie"))
		assert.Equal(t, "arcks-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Options{UserAgent: "arcks-test", Headers: map[string]string{"X-Extra": "yes"}})

	resp, err := c.R().Get(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode())

	_, err = c.R().Get(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestNewTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(Options{Timeout: 20 * time.Millisecond})
	_, err := c.R().Get(srv.URL)
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"T","summary":"S"}`))
	}))
	defer srv.Close()

	var out struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	resp, err := New(Options{}).R().SetResult(&out).Post(srv.URL)
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, "T", out.Title)
	assert.Equal(t, "S", out.Summary)
}
