package view

import (
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"time"

	"github.com/soocke/focus-meter-go/domain/region"
	"github.com/soocke/focus-meter-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

const (
	OverlayTitle = "Maximize the value to decrease the Blur"
	// moveQuiet ends a title bar move when no new position arrives in time.
	moveQuiet = 150 * time.Millisecond
)

// Overlay is the semi-transparent, always-on-top frame the user drags over the
// area to focus. The outline is the toplevel's highlight ring and the
// interior is keyed out, so the frame's client area is exactly what is
// sampled. The outline doubles as the drag handle; title bar moves are
// followed too.
type Overlay struct {
	drag     *region.Drag
	geom     region.Geometry
	alpha    float64
	logger   *slog.Logger
	win      *ToplevelWidget
	lastGeom string
	quietID  string
}

// NewOverlay creates an overlay driven by tracker. The window is created by Open.
func NewOverlay(tracker *region.Tracker, alpha float64, logger *slog.Logger) *Overlay {
	if alpha <= 0 || alpha > 1 {
		alpha = 0.5
	}
	return &Overlay{
		drag:   region.NewDrag(tracker),
		geom:   tracker.Geometry(),
		alpha:  alpha,
		logger: logger,
	}
}

// Open creates the overlay window at the tracker's geometry, or raises it
// when it is already open.
func (o *Overlay) Open() {
	if o.win != nil {
		WmDeiconify(o.win.Window)
		Focus(o.win)
		return
	}
	g := o.geom
	win := App.Toplevel(
		Borderwidth(0),
		Background(theme.ColorKey),
		Highlightthickness(g.Border),
		Highlightbackground(theme.ColorFrame),
		Highlightcolor(theme.ColorFrame),
		Cursor("fleur"),
	)
	win.WmTitle(OverlayTitle)
	o.win = win
	o.lastGeom = g.WM()
	WmGeometry(win.Window, o.lastGeom)
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-alpha", o.alpha)
	if runtime.GOOS == "windows" {
		WmAttributes(win.Window, "-toolwindow", true)
		WmAttributes(win.Window, "-transparentcolor", theme.ColorKey)
	}
	Bind(win, "<Enter>", Command(o.enter))
	Bind(win, "<ButtonPress-1>", Command(o.press))
	Bind(win, "<B1-Motion>", Command(o.motion))
	Bind(win, "<ButtonRelease-1>", Command(o.buttonRelease))
	Bind(win, "<Configure>", Command(o.moved))
	if o.logger != nil {
		o.logger.Info("overlay opened", "geometry", g.String())
	}
}

// wmRect returns the window manager rectangle of the overlay.
func (o *Overlay) wmRect() (image.Rectangle, bool) {
	geom := WmGeometry(o.win.Window)
	rect, ok := region.ParseWMGeometry(geom)
	if !ok && o.logger != nil {
		o.logger.Debug("overlay geometry unparsable", "geometry", geom)
	}
	return rect, ok
}

// pointer returns the pointer in screen coordinates and the client origin it
// implies. All bindings are on the toplevel, so the widget offset is zero.
func pointer(e *Event) (root, client image.Point) {
	root = image.Pt(e.XRoot, e.YRoot)
	return root, region.ClientOrigin(root, image.Pt(e.X, e.Y), image.Point{})
}

func (o *Overlay) enter(e *Event) {
	if o.win == nil || o.drag.Pressed() {
		return
	}
	rect, ok := o.wmRect()
	if !ok {
		return
	}
	_, client := pointer(e)
	o.drag.Calibrate(client, rect.Min)
	if deco, _ := o.drag.Decoration(); o.logger != nil {
		o.logger.Debug("overlay calibrated", "client", client.String(), "decoration", deco.String())
	}
}

func (o *Overlay) press(e *Event) {
	if o.win == nil {
		return
	}
	rect, ok := o.wmRect()
	if !ok {
		return
	}
	o.cancelQuiet()
	root, client := pointer(e)
	o.drag.Press(root, client, rect.Min)
}

func (o *Overlay) motion(e *Event) {
	if o.win == nil {
		return
	}
	wm, ok := o.drag.Motion(image.Pt(e.XRoot, e.YRoot))
	if !ok {
		return
	}
	WmGeometry(o.win.Window, fmt.Sprintf("+%d+%d", wm.X, wm.Y))
}

func (o *Overlay) buttonRelease() {
	if o.drag.Pressed() {
		o.drag.ButtonRelease()
	}
}

// moved follows window manager moves, such as a drag by the title bar, and
// restarts the quiet timer that ends them.
func (o *Overlay) moved() {
	if o.win == nil {
		return
	}
	geom := WmGeometry(o.win.Window)
	if geom == o.lastGeom {
		return
	}
	o.lastGeom = geom
	rect, ok := region.ParseWMGeometry(geom)
	if !ok {
		return
	}
	if !o.drag.WindowMoved(rect) {
		return
	}
	o.cancelQuiet()
	o.quietID = TclAfter(moveQuiet, o.quiet)
}

func (o *Overlay) quiet() {
	o.quietID = ""
	o.drag.QuietElapsed()
}

func (o *Overlay) cancelQuiet() {
	if o.quietID != "" {
		TclAfterCancel(o.quietID)
		o.quietID = ""
	}
}

// Close destroys the overlay window.
func (o *Overlay) Close() {
	o.cancelQuiet()
	if o.win != nil {
		Destroy(o.win)
		o.win = nil
	}
}
