package view

import (
	"fmt"
	"image"

	"github.com/soocke/focus-meter-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const ChartTitle = "Laplacian Variance Indicator"

// ChartWindow shows chart frames in the root window. Closing it is the
// application's shutdown signal.
type ChartWindow struct {
	label     *LabelWidget
	prevPhoto *Img // last Tk photo image instance, deleted on replace
}

// NewChartWindow builds the root window layout. onClose runs when the user
// closes the window.
func NewChartWindow(width, height int, onClose func()) *ChartWindow {
	App.WmTitle(ChartTitle)
	WmGeometry(App, fmt.Sprintf("%dx%d", width, height))
	WmProtocol(App, "WM_DELETE_WINDOW", onClose)
	GridRowConfigure(App, 0, Weight(1))
	GridColumnConfigure(App, 0, Weight(1))
	placeholder := image.NewRGBA(image.Rect(0, 0, width, height))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	label := Label(Image(photo), Borderwidth(0))
	Grid(label, Row(0), Column(0), Sticky("nsew"))
	return &ChartWindow{label: label, prevPhoto: photo}
}

// Show displays img.
func (v *ChartWindow) Show(img image.Image) {
	if v == nil || img == nil {
		return
	}
	v.ShowPNG(images.EncodePNG(img))
}

// ShowPNG displays an encoded frame, replacing the previous photo to avoid
// retaining obsolete pixel buffers.
func (v *ChartWindow) ShowPNG(data []byte) {
	if v == nil || v.label == nil || len(data) == 0 {
		return
	}
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	photo := NewPhoto(Data(data))
	v.prevPhoto = photo
	v.label.Configure(Image(photo))
}
