//go:build gocv

package sharpness

import (
	"image"

	"gocv.io/x/gocv"
)

// OpenCVScorer computes the same metric through OpenCV. OpenCV rounds the
// grayscale plane to 8 bits before filtering, so scores differ slightly from
// Scorer on identical input. Build with -tags gocv.
type OpenCVScorer struct{}

// Score returns the variance of the 64-bit Laplacian of img's grayscale plane.
func (OpenCVScorer) Score(img image.Image) float64 {
	if img == nil || img.Bounds().Empty() {
		return 0
	}
	src, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return 0
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRAToGray)

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(gray, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	mean := gocv.NewMat()
	defer mean.Close()
	std := gocv.NewMat()
	defer std.Close()
	gocv.MeanStdDev(lap, &mean, &std)
	sd := std.GetDoubleAt(0, 0)
	return sd * sd
}
