package chart

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"log/slog"
	"testing"
	"time"

	"github.com/soocke/focus-meter-go/ui/theme"
)

type recordDisplay struct {
	shown int
	last  image.Rectangle
	png   []byte
}

func (d *recordDisplay) Show(img image.Image) { d.shown++; d.last = img.Bounds() }

type pngDisplay struct{ recordDisplay }

func (d *pngDisplay) ShowPNG(data []byte) { d.shown++; d.png = data }

func countColor(img *image.RGBA, c [4]uint8) int {
	n := 0
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if img.Pix[i] == c[0] && img.Pix[i+1] == c[1] && img.Pix[i+2] == c[2] && img.Pix[i+3] == c[3] {
			n++
		}
	}
	return n
}

func TestBlitRenderer_CachesBackground(t *testing.T) {
	d := &recordDisplay{}
	r := NewBlitRenderer(320, 200, d)
	_ = r.Render([]float64{1, 2}, "a", 2.2)
	_ = r.Render([]float64{1, 2, 1}, "b", 2.2)
	if r.BackgroundRenders() != 1 {
		t.Fatalf("background rebuilt %d times for an unchanged axis", r.BackgroundRenders())
	}
	_ = r.Render([]float64{1, 2, 1, 5}, "c", 5.5)
	if r.BackgroundRenders() != 2 {
		t.Fatalf("axis change must rebuild background, got %d", r.BackgroundRenders())
	}
	if d.shown != 3 || d.last != image.Rect(0, 0, 320, 200) {
		t.Fatalf("display shown=%d bounds=%v", d.shown, d.last)
	}
}

func TestBlitRenderer_DrawsOnlyCurrentSeries(t *testing.T) {
	r := NewBlitRenderer(320, 200, nil)
	lc := theme.RGBA(theme.ColorPrimary)
	key := [4]uint8{lc.R, lc.G, lc.B, lc.A}
	_ = r.Render([]float64{0, 10, 0, 10, 0, 10}, "zigzag", 11)
	zigzag := countColor(r.Frame(), key)
	_ = r.Render([]float64{5, 5}, "flat", 11)
	flat := countColor(r.Frame(), key)
	if zigzag == 0 || flat == 0 {
		t.Fatalf("expected line pixels, zigzag=%d flat=%d", zigzag, flat)
	}
	if flat >= zigzag {
		t.Fatalf("previous polyline leaked into frame: zigzag=%d flat=%d", zigzag, flat)
	}
}

func TestBlitRenderer_ZeroAxisAndSinglePoint(t *testing.T) {
	r := NewBlitRenderer(10, 10, nil)
	if err := r.Render([]float64{0}, "zero", 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	if b := r.Frame().Bounds(); b.Dx() != minWidth || b.Dy() != minHeight {
		t.Fatalf("size not clamped: %v", b)
	}
}

func TestFullRenderer_PNG(t *testing.T) {
	d := &pngDisplay{}
	r := NewFullRenderer(400, 300, d)
	if err := r.Render([]float64{1, 3, 2, 8}, "Laplacian Variance Indicator [8.0]", 8.8); err != nil {
		t.Fatalf("render: %v", err)
	}
	if d.shown != 1 {
		t.Fatalf("png display not used")
	}
	img, err := png.Decode(bytes.NewReader(d.png))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("unexpected size %v", b)
	}
}

func TestFullRenderer_DecodesForPlainDisplay(t *testing.T) {
	d := &recordDisplay{}
	r := NewFullRenderer(400, 300, d)
	if err := r.Render([]float64{0}, "single", 0); err != nil {
		t.Fatalf("render single point: %v", err)
	}
	if d.shown != 1 || d.last.Dx() != 400 {
		t.Fatalf("display shown=%d bounds=%v", d.shown, d.last)
	}
	if err := r.Render(nil, "empty", 0); err != nil || d.shown != 1 {
		t.Fatalf("empty series must be a no-op")
	}
}

func TestLogRenderer_Throttles(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogRenderer(slog.New(slog.NewJSONHandler(&buf, nil)), time.Second)
	now := time.Unix(100, 0)
	r.now = func() time.Time { return now }
	_ = r.Render([]float64{1, 2.5}, "t", 2.75)
	now = now.Add(100 * time.Millisecond)
	_ = r.Render([]float64{1, 2.5, 3}, "t", 3.3)
	now = now.Add(time.Second)
	_ = r.Render([]float64{4}, "t", 4.4)

	dec := json.NewDecoder(&buf)
	var scores []float64
	for dec.More() {
		var rec struct {
			Msg   string  `json:"msg"`
			Score float64 `json:"score"`
		}
		if err := dec.Decode(&rec); err != nil {
			t.Fatalf("decode log: %v", err)
		}
		if rec.Msg != "chart.render" {
			t.Fatalf("unexpected message %q", rec.Msg)
		}
		scores = append(scores, rec.Score)
	}
	if len(scores) != 2 || scores[0] != 2.5 || scores[1] != 4 {
		t.Fatalf("unexpected logged scores %v", scores)
	}
}
