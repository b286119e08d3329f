package sanitizer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
)

const (
	// MaxChars bounds the excerpt, counted in characters.
	MaxChars = 5000
	// Ellipsis marks a truncated excerpt.
	Ellipsis = "..."
)

// removedElements never contribute text to the excerpt.
var removedElements = "script, style, svg, img, iframe, object, embed, noscript"

// openerPattern matches tag openers of removed kinds that appear in text
// nodes, for example from entity-encoded markup.
var openerPattern = regexp.MustCompile(`(?i)<\s*/?\s*(script|style|svg|img|iframe|object|embed|noscript)`)

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true, "title": true,
}

// Sanitize returns the visible text of an HTML document, stripped of active
// content, with whitespace collapsed and at most MaxChars characters (plus
// Ellipsis when truncated). It is pure and deterministic.
func Sanitize(src string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return ""
	}

	doc.Find(removedElements).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var buf strings.Builder
	for _, n := range root.Nodes {
		writeText(&buf, n)
	}

	return Truncate(Normalize(scrubOpeners(buf.String())), MaxChars)
}

// writeText appends the text under n, separating block elements by a space.
func writeText(buf *strings.Builder, n *xhtml.Node) {
	switch n.Type {
	case xhtml.TextNode:
		buf.WriteString(n.Data)
		return
	case xhtml.CommentNode, xhtml.DoctypeNode:
		return
	}

	block := n.Type == xhtml.ElementNode && blockElements[n.Data]
	if block {
		buf.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(buf, c)
	}
	if block {
		buf.WriteByte(' ')
	}
}

// scrubOpeners blanks every opener of a removed element kind. Text nodes are
// already entity-decoded, so any other "<" is literal text and stays.
func scrubOpeners(text string) string {
	for openerPattern.MatchString(text) {
		text = openerPattern.ReplaceAllString(text, " ")
	}
	return text
}

// Normalize collapses whitespace runs to a single space and trims.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to max characters and appends Ellipsis if it was longer.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + Ellipsis
}
