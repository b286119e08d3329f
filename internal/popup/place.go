package popup

import "github.com/GriffinCanCode/arcks/internal/page"

const (
	// Padding separates the popup from the link and the viewport edges.
	Padding = 10
	// DefaultWidth and DefaultHeight size a popup before layout measures it.
	DefaultWidth  = 320
	DefaultHeight = 180
)

// Size is the rendered size of a popup.
type Size struct {
	Width  float64
	Height float64
}

// DefaultSize returns the nominal popup size.
func DefaultSize() Size {
	return Size{Width: DefaultWidth, Height: DefaultHeight}
}

// Viewport is the visible area of the host page.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Position is the top-left corner of a popup in viewport pixels.
type Position struct {
	Left float64
	Top  float64
}

// Place positions a popup below and to the right of link. It shifts left when
// the popup would overflow the right edge, flips above the link when it would
// overflow the bottom edge, and never goes past the left or top padding.
func Place(link page.Rect, size Size, vp Viewport) Position {
	left := link.Left
	top := link.Bottom() + Padding

	if left+size.Width > vp.Width-Padding {
		left = vp.Width - size.Width - Padding
	}
	if top+size.Height > vp.Height-Padding {
		top = link.Top - size.Height - Padding
	}
	if left < Padding {
		left = Padding
	}
	if top < Padding {
		top = Padding
	}

	return Position{Left: left, Top: top}
}
