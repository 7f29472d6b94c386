// Package chart renders the sharpness history as a line chart.
package chart

import "image"

const (
	DefaultWidth  = 640
	DefaultHeight = 400
	minWidth      = 160
	minHeight     = 120
	axisName      = "Time"
)

// Display shows a rendered chart frame. img is only valid for the duration
// of the call; implementations must copy or encode it before returning.
type Display interface {
	Show(img image.Image)
}

// PNGDisplay is implemented by displays that accept encoded frames directly,
// letting renderers that already produce PNG skip a decode.
type PNGDisplay interface {
	ShowPNG(data []byte)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(img image.Image)

func (f DisplayFunc) Show(img image.Image) { f(img) }

func clampSize(w, h int) (int, int) {
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}
	return w, h
}

// axisMax turns the requested y-axis bound into a usable one. All-zero
// series produce 0, which would collapse the axis.
func axisMax(yMax float64) float64 {
	if !(yMax > 0) || yMax > 1e300 {
		return 1
	}
	return yMax
}
