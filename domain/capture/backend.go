package capture

import (
	"fmt"
	"image"
	"sort"
)

// Backend names accepted by NewBackend.
const (
	BackendScreenshot = "screenshot" // generic desktop screenshot API
	BackendDisplay    = "display"    // multi-monitor virtual screen
	BackendGDI        = "gdi"        // Windows GDI grabber with a reused DIB
)

// Backend grabs raw pixels from the screen. Coordinates are absolute screen
// pixels. Backends do not retry; the sampling cadence is the retry.
type Backend interface {
	Name() string
	// Bounds returns the capturable screen area.
	Bounds() (image.Rectangle, error)
	// CaptureRect grabs r, which is already clipped to Bounds.
	CaptureRect(r image.Rectangle) (*image.RGBA, error)
}

var backendCtors = map[string]func() (Backend, error){
	BackendScreenshot: func() (Backend, error) { return ScreenshotBackend{}, nil },
	BackendDisplay:    func() (Backend, error) { return DisplayBackend{}, nil },
	BackendGDI:        newGDIBackend,
}

// NewBackend constructs the backend registered under name.
func NewBackend(name string) (Backend, error) {
	ctor, ok := backendCtors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownBackend, name, Backends())
	}
	return ctor()
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(backendCtors))
	for n := range backendCtors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
