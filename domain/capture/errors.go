package capture

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrCaptureFailed matches every error returned by Adapter.Capture.
	ErrCaptureFailed = errors.New("capture failed")
	// ErrEmptyRect is returned for zero-area rectangles; the backend is not called.
	ErrEmptyRect = errors.New("empty capture rectangle")
	// ErrOffScreen is returned when the rectangle does not intersect the screen.
	ErrOffScreen = errors.New("capture rectangle is off-screen")
	// ErrEmptyFrame is returned when a backend produced no pixels.
	ErrEmptyFrame = errors.New("backend returned an empty frame")
	// ErrBackendUnavailable reports a backend that cannot run on this host.
	ErrBackendUnavailable = errors.New("capture backend unavailable")
	// ErrUnknownBackend is returned by NewBackend for unrecognised names.
	ErrUnknownBackend = errors.New("unknown capture backend")
)

// CaptureError describes a failed capture of Rect. It matches
// ErrCaptureFailed with errors.Is and unwraps to the underlying cause.
type CaptureError struct {
	Backend string
	Rect    image.Rectangle
	Err     error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture: %s rect=%v: %v", e.Backend, e.Rect, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// Is reports ErrCaptureFailed as a match so callers can classify any failure.
func (e *CaptureError) Is(target error) bool { return target == ErrCaptureFailed }
