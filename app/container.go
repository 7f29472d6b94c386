package app

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/focus-meter-go/config"
	"github.com/soocke/focus-meter-go/domain/capture"
	"github.com/soocke/focus-meter-go/domain/history"
	"github.com/soocke/focus-meter-go/domain/region"
	"github.com/soocke/focus-meter-go/domain/sampler"
	"github.com/soocke/focus-meter-go/ui/chart"
)

// headlessLogInterval throttles chart.render lines when no window is shown.
const headlessLogInterval = time.Second

// Container assembles the sampling pipeline: backend, adapter, scorer,
// history, tracker, renderer and loop.
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Backend  capture.Backend
	Capture  *capture.Adapter
	Scorer   sampler.Scorer
	History  *history.Buffer
	Tracker  *region.Tracker
	Renderer sampler.Renderer
	Loop     *sampler.Loop
}

// BuildContainer constructs all components for cfg. A nil display selects the
// log renderer used in headless mode.
func BuildContainer(cfg *config.Config, logger *slog.Logger, display chart.Display) (*Container, error) {
	backend, err := capture.NewBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	return buildWithBackend(cfg, logger, backend, display)
}

func buildWithBackend(cfg *config.Config, logger *slog.Logger, backend capture.Backend, display chart.Display) (*Container, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	_ = cfg.Validate()
	screen, err := backend.Bounds()
	if err != nil {
		logger.Warn("screen bounds unavailable, placing frame at origin", "backend", backend.Name(), "error", err)
		screen = image.Rect(0, 0, cfg.Size, cfg.Size)
	}
	ct := &Container{
		Config:  cfg,
		Logger:  logger,
		Backend: backend,
		Capture: capture.NewAdapter(backend, logger),
		Scorer:  newScorer(cfg),
		History: history.New(cfg.HistoryLength),
		Tracker: region.NewTracker(InitialGeometry(cfg, screen), logger),
	}
	ct.Renderer = newRenderer(cfg, logger, display)
	loop, err := sampler.New(sampler.Options{
		Geometry:  ct.Tracker,
		Capture:   ct.Capture,
		Scorer:    ct.Scorer,
		History:   ct.History,
		Renderer:  ct.Renderer,
		TickDelay: time.Duration(cfg.TickDelayMS) * time.Millisecond,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build sampler: %w", err)
	}
	ct.Loop = loop
	logger.Info("pipeline ready",
		"backend", backend.Name(),
		"chart", cfg.Chart,
		"geometry", ct.Tracker.Geometry().String(),
		"history", cfg.HistoryLength,
		"tick_ms", cfg.TickDelayMS,
	)
	return ct, nil
}

// InitialGeometry centers the frame on screen unless cfg pins X or Y.
func InitialGeometry(cfg *config.Config, screen image.Rectangle) region.Geometry {
	g := region.Centered(screen, cfg.Size, cfg.Border)
	if cfg.X != nil {
		g.X = *cfg.X
	}
	if cfg.Y != nil {
		g.Y = *cfg.Y
	}
	return g
}

func newRenderer(cfg *config.Config, logger *slog.Logger, display chart.Display) sampler.Renderer {
	if display == nil {
		return chart.NewLogRenderer(logger, headlessLogInterval)
	}
	if cfg.Chart == config.ChartFull {
		return chart.NewFullRenderer(cfg.ChartWidth, cfg.ChartHeight, display)
	}
	return chart.NewBlitRenderer(cfg.ChartWidth, cfg.ChartHeight, display)
}

// Probe reports loop and capture counters for the debug runtime logger.
func (c *Container) Probe() []slog.Attr {
	ls := c.Loop.Stats()
	cs := c.Capture.Stats()
	return []slog.Attr{
		slog.Uint64("ticks", ls.Ticks),
		slog.Uint64("scored", ls.Scored),
		slog.Uint64("skipped", ls.Skipped),
		slog.Float64("last_score", ls.LastScore),
		slog.Uint64("captures", cs.Captures),
		slog.Uint64("capture_failures", cs.Failures),
		slog.Duration("avg_capture", cs.AvgCapture),
	}
}

// Close stops the loop and releases capture resources.
func (c *Container) Close() error {
	c.Loop.Stop()
	return c.Capture.Close()
}
