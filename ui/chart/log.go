package chart

import (
	"log/slog"
	"time"
)

// LogRenderer reports the series through the logger instead of drawing it.
// Used when no display is available.
type LogRenderer struct {
	logger   *slog.Logger
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewLogRenderer logs at most once per interval; 0 logs every render.
func NewLogRenderer(logger *slog.Logger, interval time.Duration) *LogRenderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogRenderer{logger: logger, interval: interval, now: time.Now}
}

func (r *LogRenderer) Render(series []float64, title string, yMax float64) error {
	now := r.now()
	if r.interval > 0 && !r.last.IsZero() && now.Sub(r.last) < r.interval {
		return nil
	}
	r.last = now
	var latest float64
	if n := len(series); n > 0 {
		latest = series[n-1]
	}
	r.logger.Info("chart.render", "title", title, "score", latest, "points", len(series), "y_max", yMax)
	return nil
}
