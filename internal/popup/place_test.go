package popup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/arcks/internal/page"
)

func TestPlace(t *testing.T) {
	vp := Viewport{Width: 1280, Height: 800}
	size := DefaultSize()

	tests := []struct {
		name string
		link page.Rect
		vp   Viewport
		want Position
	}{
		{
			name: "below right",
			link: page.Rect{Left: 100, Top: 100, Width: 200, Height: 20},
			vp:   vp,
			want: Position{Left: 100, Top: 130},
		},
		{
			name: "shift left on right overflow",
			link: page.Rect{Left: 1100, Top: 100, Width: 150, Height: 20},
			vp:   vp,
			want: Position{Left: 1280 - 320 - 10, Top: 130},
		},
		{
			name: "flip above on bottom overflow",
			link: page.Rect{Left: 100, Top: 700, Width: 200, Height: 20},
			vp:   vp,
			want: Position{Left: 100, Top: 700 - 180 - 10},
		},
		{
			name: "clamp top",
			link: page.Rect{Left: 100, Top: 50, Width: 200, Height: 20},
			vp:   Viewport{Width: 1280, Height: 200},
			want: Position{Left: 100, Top: 10},
		},
		{
			name: "clamp left in narrow viewport",
			link: page.Rect{Left: 5, Top: 100, Width: 50, Height: 20},
			vp:   Viewport{Width: 300, Height: 800},
			want: Position{Left: 10, Top: 130},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Place(tt.link, size, tt.vp))
		})
	}
}
