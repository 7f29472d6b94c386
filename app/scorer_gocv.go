//go:build gocv

package app

import (
	"github.com/soocke/focus-meter-go/config"
	"github.com/soocke/focus-meter-go/domain/sampler"
	"github.com/soocke/focus-meter-go/domain/sharpness"
)

// newScorer uses OpenCV when built with -tags gocv. AnalysisScale is ignored.
func newScorer(*config.Config) sampler.Scorer {
	return sharpness.OpenCVScorer{}
}
