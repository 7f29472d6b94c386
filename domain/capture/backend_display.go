package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// DisplayBackend captures from the union of all active displays, so the
// frame may sit on any monitor.
type DisplayBackend struct{}

func (DisplayBackend) Name() string { return BackendDisplay }

func (DisplayBackend) Bounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("%w: no active displays", ErrBackendUnavailable)
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union, nil
}

func (DisplayBackend) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	return screenshot.CaptureRect(r)
}
