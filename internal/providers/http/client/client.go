package client

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

// DefaultUserAgent identifies arcks to remote servers.
const DefaultUserAgent = "Mozilla/5.0 (compatible; Arcks/1.0)"

// Options configures a client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// New creates a resty client without retries, credentials or cookie jar.
func New(opts Options) *resty.Client {
	pool := retryablehttp.NewClient()
	pool.RetryMax = 0
	pool.Logger = nil

	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	c := resty.New().
		SetTransport(pool.HTTPClient.Transport).
		SetCookieJar(nil).
		SetRetryCount(0).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeaders(opts.Headers)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}

	c.JSONMarshal = sonic.Marshal
	c.JSONUnmarshal = sonic.Unmarshal
	return c
}
