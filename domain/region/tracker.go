package region

import (
	"image"
	"log/slog"
)

// ReleaseFunc receives the geometry and the resulting capture rectangle when
// a drag ends. err is ErrDegenerateRegion when the frame cannot be sampled.
type ReleaseFunc func(g Geometry, rect image.Rectangle, err error)

// Tracker owns the current frame geometry. Only the input handler writes to
// it (MoveTo/Release); the sampling loop reads it through Geometry. Both run
// on the UI event loop, so no locking is done here.
type Tracker struct {
	geom     Geometry
	dragging bool
	start    image.Point
	logger   *slog.Logger

	// OnRelease is optional and called after every completed drag.
	OnRelease ReleaseFunc
}

// NewTracker returns a tracker holding the initial geometry.
func NewTracker(initial Geometry, logger *slog.Logger) *Tracker {
	return &Tracker{geom: initial, logger: logger}
}

// Geometry returns the current value.
func (t *Tracker) Geometry() Geometry {
	if t == nil {
		return Geometry{}
	}
	return t.geom
}

// Dragging reports whether a move sequence is in progress.
func (t *Tracker) Dragging() bool { return t != nil && t.dragging }

// MoveTo repositions the frame origin. The first call after a release starts
// a new drag. Width, height and border never change.
func (t *Tracker) MoveTo(x, y int) {
	if t == nil {
		return
	}
	if t.geom.X == x && t.geom.Y == y {
		return
	}
	if !t.dragging {
		t.dragging = true
		t.start = t.geom.Origin()
	}
	t.geom.X, t.geom.Y = x, y
}

// Place sets the frame origin without starting a drag. It corrects the
// geometry once the real on-screen position of the frame is known.
func (t *Tracker) Place(x, y int) {
	if t == nil || (t.geom.X == x && t.geom.Y == y) {
		return
	}
	if t.logger != nil {
		t.logger.Debug("overlay placed", "from", t.geom.Origin().String(), "to", image.Pt(x, y).String())
	}
	t.geom.X, t.geom.Y = x, y
}

// Release ends the current drag, if any, and reports the final placement.
func (t *Tracker) Release() {
	if t == nil || !t.dragging {
		return
	}
	t.dragging = false
	rect, err := t.geom.CaptureRect()
	if t.logger != nil {
		delta := t.geom.Origin().Sub(t.start)
		if err != nil {
			t.logger.Warn("overlay released", "geometry", t.geom.String(), "moved", delta.String(), "error", err)
		} else {
			t.logger.Info("overlay released", "geometry", t.geom.String(), "moved", delta.String(),
				"top_left", rect.Min.String(), "bottom_right", rect.Max.String())
		}
	}
	if t.OnRelease != nil {
		t.OnRelease(t.geom, rect, err)
	}
}
