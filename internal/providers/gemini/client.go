package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/GriffinCanCode/arcks/internal/providers/http/client"
)

var (
	ErrAPI         = errors.New("API error")
	ErrMissingKey  = errors.New("GEMINI_API_KEY not configured")
	ErrEmptyPrompt = errors.New("empty prompt")
)

const (
	apiKeyHeader    = "x-goog-api-key"
	generatePathFmt = "/v1beta/models/%s:generateContent"
)

// Config configures the client.
type Config struct {
	APIKey          string
	Model           string
	BaseURL         string
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
}

// DefaultConfig returns the generation settings of the relay.
func DefaultConfig() Config {
	return Config{
		Model:           "gemini-2.5-flash",
		BaseURL:         "https://generativelanguage.googleapis.com",
		Temperature:     0.3,
		MaxOutputTokens: 300,
		Timeout:         30 * time.Second,
	}
}

// Client is a generateContent client.
type Client struct {
	cfg  Config
	http *resty.Client
}

// New creates a client.
func New(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = def.MaxOutputTokens
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:  cfg,
		http: client.New(client.Options{Timeout: cfg.Timeout}),
	}
}

// Model returns the configured model.
func (c *Client) Model() string {
	return c.cfg.Model
}

type part struct {
	Text    string `json:"text,omitempty"`
	Thought bool   `json:"thought,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

// Generate sends prompt and returns the text parts of the first candidate in
// order. A response without candidates yields no parts and no error.
func (c *Client) Generate(ctx context.Context, prompt string) ([]string, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingKey
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
	}

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(apiKeyHeader, c.cfg.APIKey).
		SetBody(body).
		SetResult(&out).
		Post(c.cfg.BaseURL + fmt.Sprintf(generatePathFmt, url.PathEscape(c.cfg.Model)))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %d", ErrAPI, resp.StatusCode())
	}

	if len(out.Candidates) == 0 {
		return nil, nil
	}
	parts := out.Candidates[0].Content.Parts
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		texts = append(texts, p.Text)
	}
	return texts, nil
}
