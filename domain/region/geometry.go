package region

import (
	"errors"
	"fmt"
	"image"
)

// ErrDegenerateRegion reports that the border inset leaves no pixels to sample.
var ErrDegenerateRegion = errors.New("region: degenerate capture rectangle")

// Geometry is the on-screen placement of the indicator frame in absolute
// screen pixels. Border is the thickness of the visible outline drawn inside
// Width x Height.
type Geometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Border int `json:"border"`
}

// Centered returns a square geometry of the given size centered on screen.
func Centered(screen image.Rectangle, size, border int) Geometry {
	x := screen.Min.X + (screen.Dx()-size)/2
	y := screen.Min.Y + (screen.Dy()-size)/2
	return Geometry{X: x, Y: y, Width: size, Height: size, Border: border}
}

// CaptureRect insets every side by Border so the outline is never sampled.
// It returns ErrDegenerateRegion when the inset width or height is not positive.
func (g Geometry) CaptureRect() (image.Rectangle, error) {
	w := g.Width - 2*g.Border
	h := g.Height - 2*g.Border
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: %dx%d border=%d", ErrDegenerateRegion, g.Width, g.Height, g.Border)
	}
	tl := image.Pt(g.X+g.Border, g.Y+g.Border)
	return image.Rectangle{Min: tl, Max: tl.Add(image.Pt(w, h))}, nil
}

// Map is the free-function form of Geometry.CaptureRect.
func Map(g Geometry) (image.Rectangle, error) { return g.CaptureRect() }

// Translate returns g moved by (dx, dy). Size and border are unchanged.
func (g Geometry) Translate(dx, dy int) Geometry {
	g.X += dx
	g.Y += dy
	return g
}

// Origin returns the top-left corner of the frame.
func (g Geometry) Origin() image.Point { return image.Pt(g.X, g.Y) }

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d+%d+%d border=%d", g.Width, g.Height, g.X, g.Y, g.Border)
}
