package popup

import "sync"

// Root is an isolated view root that hosts one popup.
type Root interface {
	Replace(html string)
	Position(p Position)
	SetVisible(visible bool)
	Destroy()
}

// Document creates isolated roots on the host page.
type Document interface {
	CreateRoot() Root
	Viewport() Viewport
}

// MemoryDocument is a Document kept in memory. It records every root it
// creates so that callers can inspect what a user would see.
type MemoryDocument struct {
	mu       sync.Mutex
	viewport Viewport
	roots    []*MemoryRoot
	maxLive  int
}

// NewMemoryDocument creates a document with the given viewport.
func NewMemoryDocument(vp Viewport) *MemoryDocument {
	return &MemoryDocument{viewport: vp}
}

func (d *MemoryDocument) CreateRoot() Root {
	d.mu.Lock()
	defer d.mu.Unlock()

	r := &MemoryRoot{id: len(d.roots) + 1, doc: d}
	d.roots = append(d.roots, r)
	if live := d.liveLocked(); live > d.maxLive {
		d.maxLive = live
	}
	return r
}

func (d *MemoryDocument) Viewport() Viewport {
	return d.viewport
}

// Live returns the roots that have not been destroyed.
func (d *MemoryDocument) Live() []*MemoryRoot {
	d.mu.Lock()
	defer d.mu.Unlock()

	var live []*MemoryRoot
	for _, r := range d.roots {
		if !r.destroyed {
			live = append(live, r)
		}
	}
	return live
}

// Created returns the number of roots created so far.
func (d *MemoryDocument) Created() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.roots)
}

// MaxLive returns the highest number of simultaneously live roots observed.
func (d *MemoryDocument) MaxLive() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxLive
}

func (d *MemoryDocument) liveLocked() int {
	n := 0
	for _, r := range d.roots {
		if !r.destroyed {
			n++
		}
	}
	return n
}

// MemoryRoot is a Root kept in memory.
type MemoryRoot struct {
	id  int
	doc *MemoryDocument

	html      string
	renders   int
	pos       Position
	visible   bool
	destroyed bool
}

func (r *MemoryRoot) Replace(html string) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	r.html = html
	r.renders++
}

func (r *MemoryRoot) Position(p Position) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	r.pos = p
}

func (r *MemoryRoot) SetVisible(visible bool) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	r.visible = visible
}

func (r *MemoryRoot) Destroy() {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	r.destroyed = true
	r.visible = false
}

// ID identifies the root within its document, starting at 1.
func (r *MemoryRoot) ID() int { return r.id }

// HTML returns the current content.
func (r *MemoryRoot) HTML() string {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	return r.html
}

// Renders returns how many times the content was replaced.
func (r *MemoryRoot) Renders() int {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	return r.renders
}

// Pos returns the current position.
func (r *MemoryRoot) Pos() Position {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	return r.pos
}

// Visible reports whether the root is shown.
func (r *MemoryRoot) Visible() bool {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	return r.visible
}

// Destroyed reports whether the root was removed.
func (r *MemoryRoot) Destroyed() bool {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	return r.destroyed
}
