package region

import "image"

// ClientOrigin returns the screen position of a window's client area from a
// pointer event. root is the pointer in screen coordinates, local the same
// pointer relative to the receiving widget and widget that widget's offset
// inside the client area.
func ClientOrigin(root, local, widget image.Point) image.Point {
	return root.Sub(local).Sub(widget)
}

// FromWM returns the frame geometry for a window whose window manager
// rectangle is wm. The window manager origin includes the title bar and
// border; deco is the offset from it to the client area. The size part of a
// window manager geometry already describes the client area.
func FromWM(wm image.Rectangle, deco image.Point, border int) Geometry {
	return Geometry{
		X:      wm.Min.X + deco.X,
		Y:      wm.Min.Y + deco.Y,
		Width:  wm.Dx(),
		Height: wm.Dy(),
		Border: border,
	}
}

// Drag turns overlay input into tracker moves. It handles two sources: the
// pointer dragging the frame itself, and the window manager moving the window
// by its title bar. The decoration offset is learned from the first pointer
// event; until then window manager positions are taken as client positions.
//
// Drag is not safe for concurrent use; it lives on the UI event loop.
type Drag struct {
	tracker    *Tracker
	deco       image.Point
	calibrated bool
	pressed    bool
	grab       image.Point
}

// NewDrag returns a Drag feeding t.
func NewDrag(t *Tracker) *Drag {
	return &Drag{tracker: t}
}

// Decoration returns the learned offset from the window manager origin to the
// client area and whether it is known yet.
func (d *Drag) Decoration() (image.Point, bool) {
	return d.deco, d.calibrated
}

// Pressed reports whether the pointer button is held on the frame.
func (d *Drag) Pressed() bool { return d.pressed }

// Calibrate records where the client area really is. client comes from
// ClientOrigin, wmOrigin from the window manager geometry at the same moment.
// The tracker is corrected to client without starting a drag.
func (d *Drag) Calibrate(client, wmOrigin image.Point) {
	d.deco = client.Sub(wmOrigin)
	d.calibrated = true
	d.tracker.Place(client.X, client.Y)
}

// Press starts a pointer drag. root is the pointer position on the screen.
func (d *Drag) Press(root, client, wmOrigin image.Point) {
	d.Calibrate(client, wmOrigin)
	d.pressed = true
	d.grab = root.Sub(client)
}

// Motion follows the pointer while the button is held. It returns the window
// manager origin the window must be moved to so its client area lands under
// the pointer, or false when no drag is in progress.
func (d *Drag) Motion(root image.Point) (image.Point, bool) {
	if !d.pressed {
		return image.Point{}, false
	}
	client := root.Sub(d.grab)
	d.tracker.MoveTo(client.X, client.Y)
	return client.Sub(d.deco), true
}

// ButtonRelease ends a pointer drag and reports the final placement.
func (d *Drag) ButtonRelease() {
	d.pressed = false
	d.tracker.Release()
}

// WindowMoved handles a window manager geometry change. It reports whether the
// frame moved, in which case the caller restarts its quiet timer. Changes that
// arrive during a pointer drag are echoes of Motion and are ignored.
func (d *Drag) WindowMoved(wm image.Rectangle) bool {
	if d.pressed || d.tracker == nil {
		return false
	}
	client := wm.Min.Add(d.deco)
	before := d.tracker.Geometry().Origin()
	d.tracker.MoveTo(client.X, client.Y)
	return d.tracker.Geometry().Origin() != before
}

// QuietElapsed is called when no window manager move arrived for a while. It
// ends a title bar drag. A held button is a pointer drag that has paused, so
// it is left running. It reports whether a drag was released.
func (d *Drag) QuietElapsed() bool {
	if d.pressed || !d.tracker.Dragging() {
		return false
	}
	d.tracker.Release()
	return true
}
