package popup

import (
	"github.com/GriffinCanCode/arcks/internal/page"
	"github.com/GriffinCanCode/arcks/internal/shared/id"
	"github.com/GriffinCanCode/arcks/internal/summary"
)

// State is the lifecycle stage of a popup.
type State int

const (
	StateAbsent State = iota
	StateLoading
	StateContent
	StateError
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateLoading:
		return "loading"
	case StateContent:
		return "showing-content"
	case StateError:
		return "showing-error"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// View is one popup bound to the hover session that created it.
type View struct {
	Token id.SessionToken
	URL   string

	root  Root
	state State
	prev  State
	pos   Position
}

// Open creates a root on doc, renders the loading skeleton and positions it
// next to link.
func Open(doc Document, token id.SessionToken, target string, link page.Rect, size Size) *View {
	v := &View{
		Token: token,
		URL:   target,
		root:  doc.CreateRoot(),
		state: StateLoading,
	}
	v.root.Replace(RenderLoading(target))
	v.pos = Place(link, size, doc.Viewport())
	v.root.Position(v.pos)
	v.root.SetVisible(true)
	return v
}

// State returns the current state.
func (v *View) State() State {
	return v.state
}

// Position returns where the popup was placed.
func (v *View) Position() Position {
	return v.pos
}

// Loading reports whether the popup still waits for its summary. A closing
// popup that was loading still counts.
func (v *View) Loading() bool {
	return v.state == StateLoading || (v.state == StateClosing && v.prev == StateLoading)
}

// Show renders a result, as content or as an error. It returns false if the
// popup no longer waits for a result.
func (v *View) Show(res summary.Result) bool {
	if !v.Loading() {
		return false
	}
	next := StateContent
	html := ""
	if res.IsError() {
		next = StateError
		html = RenderError(v.URL, res.Error)
	} else {
		html = RenderContent(v.URL, res)
	}
	v.root.Replace(html)
	v.settle(next)
	return true
}

// BeginClose starts the fade-out.
func (v *View) BeginClose() {
	if v.state == StateClosing || v.state == StateAbsent {
		return
	}
	v.prev = v.state
	v.state = StateClosing
	v.root.SetVisible(false)
}

// CancelClose stops an in-progress fade and restores the previous state.
func (v *View) CancelClose() bool {
	if v.state != StateClosing {
		return false
	}
	v.state = v.prev
	v.root.SetVisible(true)
	return true
}

// Destroy removes the root.
func (v *View) Destroy() {
	if v.state == StateAbsent {
		return
	}
	v.state = StateAbsent
	v.root.Destroy()
}

// settle moves to next, keeping a pending fade in place.
func (v *View) settle(next State) {
	if v.state == StateClosing {
		v.prev = next
		return
	}
	v.state = next
}
