package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("with content", func(t *testing.T) {
		p := BuildPrompt("https://example.com/", "Hello world")
		assert.Contains(t, p, "URL: https://example.com/")
		assert.Contains(t, p, "Page Content:\nHello world")
		assert.Contains(t, p, `{"title": "Page Title", "summary": "2-3 sentence summary of the page content."}`)
		assert.NotContains(t, p, noContent)
	})

	t.Run("without content", func(t *testing.T) {
		p := BuildPrompt("https://example.com/", "")
		assert.Contains(t, p, "Page Content:\n"+noContent)
	})
}
