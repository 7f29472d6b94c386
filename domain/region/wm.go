package region

import (
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"
)

// wmGeometryRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var wmGeometryRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// ParseWMGeometry parses a window manager geometry string and returns the
// window rectangle.
func ParseWMGeometry(s string) (image.Rectangle, bool) {
	m := wmGeometryRe.FindStringSubmatch(strings.TrimSpace(s))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

// WM formats g as a window manager geometry string.
func (g Geometry) WM() string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}
