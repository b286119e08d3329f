package page

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Synthetic layout used when a link carries no data-rect attribute.
const (
	layoutLeft    = 16
	layoutTop     = 16
	layoutSpacing = 32
	layoutHeight  = 20
	charWidth     = 7
	maxLinkWidth  = 600
)

// Rect is a bounding box in viewport pixels.
type Rect struct {
	Left   float64 `yaml:"left" json:"left"`
	Top    float64 `yaml:"top" json:"top"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Link is one anchor of the page.
type Link struct {
	Index int
	Raw   string
	Href  string
	Text  string
	Rect  Rect

	sel *goquery.Selection
}

// URL parses the resolved href.
func (l *Link) URL() (*url.URL, error) {
	return url.Parse(l.Href)
}

// Host returns the lowercase hostname of the link target.
func (l *Link) Host() string {
	u, err := l.URL()
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Within reports whether the link or one of its ancestors matches selector.
func (l *Link) Within(selector string) bool {
	if l.sel == nil {
		return false
	}
	return l.sel.Closest(selector).Length() > 0
}

func (l *Link) String() string {
	return fmt.Sprintf("#%d %s", l.Index, l.Href)
}

// Document is a parsed page with its anchors resolved against the page URL.
type Document struct {
	doc   *goquery.Document
	base  *url.URL
	links []*Link
}

// Parse reads an HTML page. base is the URL the page was loaded from and is
// used to resolve relative hrefs; it may be empty.
func Parse(r io.Reader, base string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var baseURL *url.URL
	if base != "" {
		baseURL, err = url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", base, err)
		}
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if u, err := url.Parse(strings.TrimSpace(href)); err == nil {
			if baseURL != nil {
				u = baseURL.ResolveReference(u)
			}
			baseURL = u
		}
	}

	d := &Document{doc: doc, base: baseURL}
	d.collect()
	return d, nil
}

// ParseString parses an HTML page held in memory.
func ParseString(html, base string) (*Document, error) {
	return Parse(strings.NewReader(html), base)
}

func (d *Document) collect() {
	d.doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		raw, _ := s.Attr("href")
		raw = strings.TrimSpace(raw)
		text := strings.Join(strings.Fields(s.Text()), " ")

		link := &Link{
			Index: i,
			Raw:   raw,
			Href:  d.resolve(raw),
			Text:  text,
			sel:   s,
		}
		link.Rect = layout(i, text, s)
		d.links = append(d.links, link)
	})
}

func (d *Document) resolve(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if d.base != nil {
		u = d.base.ResolveReference(u)
	}
	return u.String()
}

// layout returns the box given by a data-rect="left,top,width,height"
// attribute, or a stacked synthetic box.
func layout(i int, text string, s *goquery.Selection) Rect {
	if attr, ok := s.Attr("data-rect"); ok {
		if r, ok := parseRect(attr); ok {
			return r
		}
	}
	width := float64(len([]rune(text)) * charWidth)
	if width == 0 {
		width = charWidth
	}
	if width > maxLinkWidth {
		width = maxLinkWidth
	}
	return Rect{
		Left:   layoutLeft,
		Top:    float64(layoutTop + i*layoutSpacing),
		Width:  width,
		Height: layoutHeight,
	}
}

func parseRect(attr string) (Rect, bool) {
	parts := strings.Split(attr, ",")
	if len(parts) != 4 {
		return Rect{}, false
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rect{}, false
		}
		v[i] = f
	}
	return Rect{Left: v[0], Top: v[1], Width: v[2], Height: v[3]}, true
}

// Links returns every anchor with an href, in document order.
func (d *Document) Links() []*Link {
	return d.links
}

// Link returns the anchor at index i.
func (d *Document) Link(i int) (*Link, bool) {
	if i < 0 || i >= len(d.links) {
		return nil, false
	}
	return d.links[i], true
}

// FindHref returns the first anchor whose resolved or raw href equals href.
func (d *Document) FindHref(href string) (*Link, bool) {
	for _, l := range d.links {
		if l.Href == href || l.Raw == href {
			return l, true
		}
	}
	return nil, false
}

// Title returns the page title.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}
