// Package replay drives a hover controller from a YAML script of pointer
// events against a saved results page, on a manual clock.
//
// Script format:
//
//	page: results.html            # relative to the script
//	base: https://www.google.com/search?q=go
//	viewport: {width: 1280, height: 800}
//	settings: {hoverDelay: 800, enabled: true}
//	summaries:
//	  https://go.dev/: {title: Go, summary: The Go language.}
//	  https://broken.example/: {error: API error 500}
//	steps:
//	  - enter: https://go.dev/
//	  - wait: 900ms
//	  - enterPopup: true
//	  - leavePopup: true
//	  - wait: 300ms
//
// Script settings apply on top of Options.Settings (the user's saved settings
// in live runs) or the defaults. Summaries are answered from the script unless
// a live summarizer is given.
// Answers arrive right after the step that requested them.
package replay
