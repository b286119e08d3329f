package relay

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/arcks/internal/summary"
)

// ErrInvalidURL is returned when a fallback title cannot be derived.
var ErrInvalidURL = errors.New("invalid URL")

// Fallback kinds reported to metrics.
const (
	FallbackNone    = ""
	FallbackNoText  = "no_text"
	FallbackRawText = "raw_text"
)

var (
	jsonObject = regexp.MustCompile(`(?s)\{.*\}`)
	codeFence  = regexp.MustCompile("```json|```")
)

// Normalize turns the model's text parts into a summary. The last non-empty
// part is the answer; a JSON object in it with a non-empty title and summary
// is used as is. Otherwise the hostname becomes the title and the answer
// text, without code fences and cut to 250 characters, the summary. The
// second return value names the fallback taken, if any.
func Normalize(target string, parts []string) (summary.Result, string, error) {
	text := lastText(parts)
	if text != "" {
		if res, ok := parseAnswer(text); ok {
			return res, FallbackNone, nil
		}
	}

	host, err := hostname(target)
	if err != nil {
		return summary.Result{}, FallbackNone, err
	}

	if text == "" {
		return summary.Success(host, summary.Unavailable), FallbackNoText, nil
	}

	body := strings.TrimSpace(codeFence.ReplaceAllString(text, ""))
	body = truncate(body, summary.MaxFallbackText)
	if body == "" {
		body = summary.Unavailable
	}
	return summary.Success(host, body), FallbackRawText, nil
}

func lastText(parts []string) string {
	text := ""
	for _, p := range parts {
		if p != "" {
			text = p
		}
	}
	return text
}

func parseAnswer(text string) (summary.Result, bool) {
	match := jsonObject.FindString(text)
	if match == "" {
		return summary.Result{}, false
	}
	var parsed struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	if err := sonic.UnmarshalString(match, &parsed); err != nil {
		return summary.Result{}, false
	}
	if parsed.Title == "" || parsed.Summary == "" {
		return summary.Result{}, false
	}
	return summary.Success(parsed.Title, parsed.Summary), true
}

func hostname(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return "", ErrInvalidURL
	}
	return u.Hostname(), nil
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
