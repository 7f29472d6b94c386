//go:build !gocv

package app

import (
	"github.com/soocke/focus-meter-go/config"
	"github.com/soocke/focus-meter-go/domain/sampler"
	"github.com/soocke/focus-meter-go/domain/sharpness"
)

func newScorer(cfg *config.Config) sampler.Scorer {
	return sharpness.NewScorer(sharpness.Options{AnalysisScale: cfg.AnalysisScale})
}
