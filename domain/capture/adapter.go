package capture

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync/atomic"
	"time"
)

const statsLogInterval = 5 * time.Second

// Adapter is the frame capture boundary used by the sampling loop. It
// validates and clips the requested rectangle, calls the backend once and
// turns every failure, panics included, into a *CaptureError.
type Adapter struct {
	backend      Backend
	logger       *slog.Logger
	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	lastUnix     atomic.Int64
	lastRect     atomic.Pointer[image.Rectangle]
	lastLog      time.Time
}

// NewAdapter wraps backend. logger may be nil.
func NewAdapter(backend Backend, logger *slog.Logger) *Adapter {
	return &Adapter{backend: backend, logger: logger}
}

// Backend returns the wrapped backend.
func (a *Adapter) Backend() Backend { return a.backend }

// Capture grabs the pixels inside r (absolute screen coordinates). A
// rectangle that is partly off-screen is clipped to the screen, so the
// returned frame covers only the visible part and is smaller than r. Scores
// computed from a clipped frame cover a smaller area and are not directly
// comparable with scores from the full rectangle. Fully off-screen or empty
// rectangles fail without calling the backend.
func (a *Adapter) Capture(r image.Rectangle) (*image.RGBA, error) {
	name := a.name()
	if r.Empty() {
		return nil, a.fail(&CaptureError{Backend: name, Rect: r, Err: ErrEmptyRect})
	}
	if a.backend == nil {
		return nil, a.fail(&CaptureError{Backend: name, Rect: r, Err: ErrBackendUnavailable})
	}
	screen, err := a.backend.Bounds()
	if err != nil {
		return nil, a.fail(&CaptureError{Backend: name, Rect: r, Err: err})
	}
	clipped := r.Intersect(screen)
	if clipped.Empty() {
		return nil, a.fail(&CaptureError{Backend: name, Rect: r, Err: fmt.Errorf("%w: screen=%v", ErrOffScreen, screen)})
	}

	start := time.Now()
	img, err := a.grab(clipped)
	if err != nil {
		return nil, a.fail(&CaptureError{Backend: name, Rect: clipped, Err: err})
	}
	if img == nil || img.Bounds().Empty() {
		return nil, a.fail(&CaptureError{Backend: name, Rect: clipped, Err: ErrEmptyFrame})
	}
	elapsed := time.Since(start)
	a.captureNanos.Add(uint64(elapsed.Nanoseconds()))
	a.captures.Add(1)
	a.lastUnix.Store(time.Now().UnixNano())
	a.lastRect.Store(&clipped)
	a.maybeLogStats()
	return img, nil
}

// grab calls the backend, converting a panic into an error.
func (a *Adapter) grab(r image.Rectangle) (img *image.RGBA, err error) {
	defer func() {
		if p := recover(); p != nil {
			img, err = nil, fmt.Errorf("backend panic: %v", p)
		}
	}()
	return a.backend.CaptureRect(r)
}

func (a *Adapter) fail(err *CaptureError) error {
	a.failures.Add(1)
	return err
}

func (a *Adapter) name() string {
	if a.backend == nil {
		return "<none>"
	}
	return a.backend.Name()
}

// Stats returns a snapshot of the counters.
func (a *Adapter) Stats() Stats {
	captures := a.captures.Load()
	st := Stats{Captures: captures, Failures: a.failures.Load()}
	if total := a.captureNanos.Load(); captures > 0 && total > 0 {
		st.AvgCapture = time.Duration(total / captures)
	}
	if ns := a.lastUnix.Load(); ns != 0 {
		st.LastCapture = time.Unix(0, ns)
	}
	if r := a.lastRect.Load(); r != nil {
		st.LastRect = *r
	}
	return st
}

// Close releases backend resources when the backend holds any.
func (a *Adapter) Close() error {
	if c, ok := a.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (a *Adapter) maybeLogStats() {
	if a.logger == nil {
		return
	}
	now := time.Now()
	if a.lastLog.IsZero() {
		a.lastLog = now
		return
	}
	if now.Sub(a.lastLog) < statsLogInterval {
		return
	}
	a.lastLog = now
	st := a.Stats()
	a.logger.Debug("capture.stats",
		"backend", a.name(),
		"captures", st.Captures,
		"failures", st.Failures,
		"avg_capture", st.AvgCapture,
		"rect", st.LastRect.String(),
	)
}
