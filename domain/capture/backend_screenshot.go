package capture

import (
	"image"

	"github.com/vova616/screenshot"
)

// ScreenshotBackend uses the generic desktop screenshot API of the primary
// screen.
type ScreenshotBackend struct{}

func (ScreenshotBackend) Name() string { return BackendScreenshot }

func (ScreenshotBackend) Bounds() (image.Rectangle, error) { return screenshot.ScreenRect() }

func (ScreenshotBackend) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	return screenshot.CaptureRect(r)
}
