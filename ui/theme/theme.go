// Package theme centralizes the colors shared by the Tk views and the chart
// rasterizers. It has no Tk dependency so headless renderers can use it.
package theme

import (
	"image/color"
	"strconv"
	"strings"
)

// Palette defines core semantic colors used across widgets and charts.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // chart canvas
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // score polyline
	ColorGrid      = "#e2e8f0"
	ColorAxis      = "#64748b"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
	ColorFrame     = "#00ff00" // overlay outline
	ColorKey       = "#ff00fe" // overlay interior, keyed out as transparent
)

// PaletteSnapshot holds the palette resolved to RGBA for raster drawing.
type PaletteSnapshot struct {
	Surface   color.RGBA
	Grid      color.RGBA
	Axis      color.RGBA
	Line      color.RGBA
	Text      color.RGBA
	TextMuted color.RGBA
}

// CurrentPalette returns the chart colors.
func CurrentPalette() PaletteSnapshot {
	return PaletteSnapshot{
		Surface:   RGBA(ColorSurface),
		Grid:      RGBA(ColorGrid),
		Axis:      RGBA(ColorAxis),
		Line:      RGBA(ColorPrimary),
		Text:      RGBA(ColorText),
		TextMuted: RGBA(ColorTextMuted),
	}
}

// RGBA parses "#rrggbb" or "#rgb". Malformed input yields opaque black.
func RGBA(hex string) color.RGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{A: 0xff}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
