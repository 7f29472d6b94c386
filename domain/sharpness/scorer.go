// Package sharpness turns a captured region into a scalar focus score: the
// variance of the Laplacian of the region's intensity. Sharp content has
// strong, varied edge responses; blur flattens them towards zero.
package sharpness

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"
)

// Luma weights (ITU-R BT.601) applied to 8-bit R, G, B.
const (
	WeightR = 0.299
	WeightG = 0.587
	WeightB = 0.114
)

// minAnalysisSide keeps downscaled regions large enough for a 3x3 kernel.
const minAnalysisSide = 3

// Options tune the scorer.
type Options struct {
	// AnalysisScale in (0,1] resamples the region before scoring. Values >= 1
	// (or <= 0) score at native resolution.
	AnalysisScale float64
}

// Scorer computes Laplacian-variance sharpness scores. It holds no per-call
// state and is safe for concurrent use.
type Scorer struct {
	scale float64
}

// NewScorer returns a scorer for the given options.
func NewScorer(opts Options) *Scorer {
	scale := opts.AnalysisScale
	if scale <= 0 || scale > 1 {
		scale = 1
	}
	return &Scorer{scale: scale}
}

// Score returns the population variance of the Laplacian response over every
// pixel of img. Empty or nil images score 0.
func (s *Scorer) Score(img image.Image) float64 {
	if img == nil {
		return 0
	}
	if s != nil && s.scale < 1 {
		img = downscale(img, s.scale)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return 0
	}
	gray := acquirePlane(w * h)
	defer releasePlane(gray)
	Intensity(img, *gray)

	resp := acquirePlane(w * h)
	defer releasePlane(resp)
	Laplacian(*gray, w, h, *resp)

	v := stat.PopVariance(*resp, nil)
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// Intensity writes the BT.601 luma of every pixel of img into dst in row-major
// order. dst must hold at least Dx*Dy elements.
func Intensity(img image.Image, dst []float64) {
	b := img.Bounds()
	w := b.Dx()
	switch src := img.(type) {
	case *image.RGBA:
		for y := 0; y < b.Dy(); y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := src.Pix[off : off+w*4]
			out := dst[y*w : y*w+w]
			for x := range out {
				i := x * 4
				out[x] = WeightR*float64(row[i]) + WeightG*float64(row[i+1]) + WeightB*float64(row[i+2])
			}
		}
	case *image.Gray:
		for y := 0; y < b.Dy(); y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			row := src.Pix[off : off+w]
			out := dst[y*w : y*w+w]
			for x := range out {
				out[x] = float64(row[x])
			}
		}
	default:
		idx := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				dst[idx] = WeightR*float64(r>>8) + WeightG*float64(g>>8) + WeightB*float64(bl>>8)
				idx++
			}
		}
	}
}

// Laplacian applies the 4-neighbour kernel [[0,1,0],[1,-4,1],[0,1,0]] to the
// w x h plane src, writing one response per pixel into dst. Borders are
// reflected without repeating the edge pixel (OpenCV BORDER_REFLECT_101).
// Each neighbour difference is taken separately so a flat plane yields
// exactly zero.
func Laplacian(src []float64, w, h int, dst []float64) {
	for y := 0; y < h; y++ {
		up := reflect101(y-1, h) * w
		down := reflect101(y+1, h) * w
		row := y * w
		for x := 0; x < w; x++ {
			c := src[row+x]
			l := src[row+reflect101(x-1, w)]
			r := src[row+reflect101(x+1, w)]
			u := src[up+x]
			d := src[down+x]
			dst[row+x] = (l - c) + (r - c) + (u - c) + (d - c)
		}
	}
}

func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	if i < 0 {
		return -i
	}
	if i >= n {
		return 2*n - 2 - i
	}
	return i
}

func downscale(img image.Image, scale float64) image.Image {
	b := img.Bounds()
	w := int(math.Round(float64(b.Dx()) * scale))
	h := int(math.Round(float64(b.Dy()) * scale))
	if w < minAnalysisSide || h < minAnalysisSide {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
