package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/soocke/focus-meter-go/config"
	"github.com/soocke/focus-meter-go/debug"
	"github.com/soocke/focus-meter-go/domain/sampler"
)

const debugInterval = 5 * time.Second

// RunHeadless samples without any window until ctx is cancelled. Scores are
// reported through the logger.
func RunHeadless(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	c, err := BuildContainer(cfg, logger, nil)
	if err != nil {
		return err
	}
	return c.RunHeadless(ctx)
}

// RunHeadless drives the loop from a ticker until ctx is cancelled, then
// stops it and waits for the in-flight tick.
func (c *Container) RunHeadless(ctx context.Context) error {
	if c.Config.Debug {
		debug.StartRuntimeLogger(ctx, debugInterval, c.Logger, c.Probe)
	}
	sched := sampler.NewTickerScheduler(ctx)
	c.Loop.Start(sched)
	c.Logger.Info("headless sampling", "geometry", c.Tracker.Geometry().String())
	<-ctx.Done()
	err := c.Close()
	sched.Wait()
	st := c.Loop.Stats()
	c.Logger.Info("headless stopped", "ticks", st.Ticks, "scored", st.Scored, "skipped", st.Skipped, "last_score", st.LastScore)
	return err
}
