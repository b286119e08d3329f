package popup

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/arcks/internal/summary"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderLoading(t *testing.T) {
	doc := parse(t, RenderLoading("https://go.dev/doc"))

	assert.Equal(t, 1, doc.Find(".arcks-skeleton").Length())
	assert.Equal(t, 3, doc.Find(".arcks-skeleton-line").Length())

	link := doc.Find("a.arcks-link")
	href, _ := link.Attr("href")
	assert.Equal(t, "https://go.dev/doc", href)
	assert.Equal(t, "go.dev", link.Find(".arcks-url").Text())

	src, _ := doc.Find("img.arcks-favicon").Attr("src")
	assert.Equal(t, "https://www.google.com/s2/favicons?domain=go.dev&sz=32", src)
}

func TestRenderContentEscapes(t *testing.T) {
	res := summary.Success(`<script>alert("x")</script>Go`, `Fast & <b>simple</b>`)
	html := RenderContent("https://go.dev/", res)

	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "<b>")

	doc := parse(t, html)
	assert.Equal(t, `<script>alert("x")</script>Go`, doc.Find(".arcks-title").Text())
	assert.Equal(t, `Fast & <b>simple</b>`, doc.Find(".arcks-summary").Text())
	assert.Equal(t, 0, doc.Find(".arcks-skeleton").Length())
}

func TestRenderContentFallbacks(t *testing.T) {
	doc := parse(t, RenderContent("https://go.dev/", summary.Result{}))

	assert.Equal(t, "go.dev", doc.Find(".arcks-title").Text())
	assert.Equal(t, summary.NoSummary, doc.Find(".arcks-summary").Text())
}

func TestRenderErrorKeepsSourceLink(t *testing.T) {
	doc := parse(t, RenderError("https://go.dev/", "API error: 500 - <oops>"))

	assert.Equal(t, "API error: 500 - <oops>", doc.Find(".arcks-error").Text())
	assert.Equal(t, 1, doc.Find("a.arcks-link").Length())
	assert.Equal(t, 0, doc.Find(".arcks-skeleton-line").Length())
}

func TestRenderDropsScriptURLs(t *testing.T) {
	html := RenderLoading("javascript:alert(1)")
	assert.NotContains(t, html, "javascript:")
}
