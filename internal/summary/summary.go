// Package summary defines the result shape shared by the relay and the client.
package summary

import "fmt"

// Fallback texts shown when a summary cannot be produced.
const (
	NoSummary       = "No summary available."
	Unavailable     = "Unable to generate summary."
	PreviewFailed   = "Failed to load preview"
	MaxFallbackText = 250
)

// Request is the body the client sends to the relay.
type Request struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Result is either a summary or an error, never both.
type Result struct {
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success builds a summary result.
func Success(title, text string) Result {
	return Result{Title: title, Summary: text}
}

// Failure builds an error result.
func Failure(msg string) Result {
	return Result{Error: msg}
}

// Failuref builds an error result from a format string.
func Failuref(format string, args ...any) Result {
	return Result{Error: fmt.Sprintf(format, args...)}
}

// IsError reports whether the result carries an error.
func (r Result) IsError() bool {
	return r.Error != ""
}

// Text returns the summary body, or the placeholder when it is empty.
func (r Result) Text() string {
	if r.Summary == "" {
		return NoSummary
	}
	return r.Summary
}
