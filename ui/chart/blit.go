package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/focus-meter-go/ui/theme"
)

const (
	padLeft   = 56
	padRight  = 12
	padTop    = 24
	padBottom = 24
	gridLines = 4
)

// BlitRenderer rasterizes the chart itself. Axes, grid and labels live in a
// cached background that is rebuilt only when the y-axis bound changes; each
// tick copies it and draws just the polyline and the title.
type BlitRenderer struct {
	width, height int
	display       Display
	pal           theme.PaletteSnapshot

	bg        *image.RGBA
	bgYMax    float64
	bgRenders int
	frame     *image.RGBA
}

// NewBlitRenderer returns a renderer producing width x height frames for
// display. display may be nil; the last frame stays available via Frame.
func NewBlitRenderer(width, height int, display Display) *BlitRenderer {
	width, height = clampSize(width, height)
	return &BlitRenderer{width: width, height: height, display: display, pal: theme.CurrentPalette()}
}

// Render draws series (x domain [0, len)) against a y axis of [0, yMax].
func (r *BlitRenderer) Render(series []float64, title string, yMax float64) error {
	yMax = axisMax(yMax)
	if r.bg == nil || r.bgYMax != yMax {
		r.drawBackground(yMax)
	}
	if r.frame == nil {
		r.frame = image.NewRGBA(r.bg.Bounds())
	}
	copy(r.frame.Pix, r.bg.Pix)
	r.drawSeries(series, yMax)
	drawText(r.frame, title, (r.width-textWidth(title))/2, padTop-8, r.pal.Text)
	if r.display != nil {
		r.display.Show(r.frame)
	}
	return nil
}

// Frame returns the most recent frame, or nil before the first Render.
func (r *BlitRenderer) Frame() *image.RGBA { return r.frame }

// BackgroundRenders counts background rebuilds.
func (r *BlitRenderer) BackgroundRenders() int { return r.bgRenders }

func (r *BlitRenderer) plot() image.Rectangle {
	return image.Rect(padLeft, padTop, r.width-padRight, r.height-padBottom)
}

func (r *BlitRenderer) drawBackground(yMax float64) {
	if r.bg == nil {
		r.bg = image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	}
	draw.Draw(r.bg, r.bg.Bounds(), image.NewUniform(r.pal.Surface), image.Point{}, draw.Src)
	p := r.plot()
	for i := 0; i <= gridLines; i++ {
		y := p.Max.Y - 1 - i*(p.Dy()-1)/gridLines
		hline(r.bg, p.Min.X, p.Max.X-1, y, r.pal.Grid)
		label := fmt.Sprintf("%.4g", yMax*float64(i)/gridLines)
		drawText(r.bg, label, p.Min.X-6-textWidth(label), y+4, r.pal.TextMuted)
	}
	hline(r.bg, p.Min.X, p.Max.X-1, p.Max.Y-1, r.pal.Axis)
	vline(r.bg, p.Min.X, p.Min.Y, p.Max.Y-1, r.pal.Axis)
	drawText(r.bg, axisName, p.Min.X+(p.Dx()-textWidth(axisName))/2, r.height-8, r.pal.TextMuted)
	r.bgYMax = yMax
	r.bgRenders++
}

func (r *BlitRenderer) drawSeries(series []float64, yMax float64) {
	p := r.plot()
	n := len(series)
	if n == 0 {
		return
	}
	pt := func(i int) image.Point {
		x := p.Min.X
		if n > 1 {
			x += i * (p.Dx() - 1) / (n - 1)
		}
		v := series[i] / yMax
		if v < 0 || v != v {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return image.Pt(x, p.Max.Y-1-int(v*float64(p.Dy()-1)+0.5))
	}
	prev := pt(0)
	if n == 1 {
		draw.Draw(r.frame, image.Rect(prev.X-1, prev.Y-1, prev.X+2, prev.Y+2), image.NewUniform(r.pal.Line), image.Point{}, draw.Src)
		return
	}
	for i := 1; i < n; i++ {
		next := pt(i)
		line(r.frame, prev, next, r.pal.Line)
		line(r.frame, prev.Add(image.Pt(0, -1)), next.Add(image.Pt(0, -1)), r.pal.Line)
		prev = next
	}
}

func drawText(dst draw.Image, s string, x, baseline int, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(x, baseline)}
	d.DrawString(s)
}

func textWidth(s string) int { return font.MeasureString(basicfont.Face7x13, s).Ceil() }

func hline(dst *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		dst.SetRGBA(x, y, c)
	}
}

func vline(dst *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		dst.SetRGBA(x, y, c)
	}
}

// line draws a Bresenham segment from a to b inclusive.
func line(dst *image.RGBA, a, b image.Point, c color.RGBA) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	for {
		dst.SetRGBA(a.X, a.Y, c)
		if a == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			a.X += sx
		}
		if e2 <= dx {
			e += dx
			a.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
