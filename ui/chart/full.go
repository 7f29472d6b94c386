package chart

import (
	"bytes"
	"fmt"
	"image/png"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/soocke/focus-meter-go/ui/theme"
)

// FullRenderer redraws the whole figure with go-chart on every tick.
type FullRenderer struct {
	width, height int
	display       Display
}

// NewFullRenderer returns a renderer producing width x height PNG frames.
func NewFullRenderer(width, height int, display Display) *FullRenderer {
	width, height = clampSize(width, height)
	return &FullRenderer{width: width, height: height, display: display}
}

// Render draws the chart and hands it to the display, as PNG when the display
// accepts it.
func (r *FullRenderer) Render(series []float64, title string, yMax float64) error {
	if len(series) == 0 {
		return nil
	}
	data, err := r.RenderPNG(series, title, yMax)
	if err != nil {
		return err
	}
	switch d := r.display.(type) {
	case nil:
	case PNGDisplay:
		d.ShowPNG(data)
	default:
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decode chart: %w", err)
		}
		d.Show(img)
	}
	return nil
}

// RenderPNG encodes the chart for series as PNG.
func (r *FullRenderer) RenderPNG(series []float64, title string, yMax float64) ([]byte, error) {
	xs := make([]float64, len(series))
	for i := range xs {
		xs[i] = float64(i)
	}
	ys := series
	if len(series) == 1 {
		// go-chart needs a non-zero x range.
		xs = []float64{0, 1}
		ys = []float64{series[0], series[0]}
	}
	ch := gochart.Chart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           axisName,
			ValueFormatter: func(interface{}) string { return "" },
		},
		YAxis: gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: axisMax(yMax)}},
		Series: []gochart.Series{gochart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: drawing.ColorFromHex(theme.ColorPrimary),
				StrokeWidth: 2,
			},
		}},
	}
	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
