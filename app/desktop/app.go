// Package desktop hosts the Tk user interface: the chart window, the
// draggable overlay and the Tk-driven sampling schedule.
package desktop

import (
	"context"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/focus-meter-go/app"
	"github.com/soocke/focus-meter-go/config"
	"github.com/soocke/focus-meter-go/debug"
	"github.com/soocke/focus-meter-go/ui/view"
)

const debugInterval = 5 * time.Second

// desktopApp owns the Tk windows and the sampling pipeline. Closing the chart
// window is the only way to stop it.
type desktopApp struct {
	cfg       *config.Config
	logger    *slog.Logger
	container *app.Container
	chart     *view.ChartWindow
	overlay   *view.Overlay
	stopDebug context.CancelFunc
	closed    bool
}

func NewApp(cfg *config.Config, logger *slog.Logger) *desktopApp {
	return &desktopApp{cfg: cfg, logger: logger}
}

// Start builds the UI, starts sampling and blocks until the chart window is
// closed.
func (a *desktopApp) Start() error {
	view.InitStyles()
	a.chart = view.NewChartWindow(a.cfg.ChartWidth, a.cfg.ChartHeight, a.exitHandler)

	c, err := app.BuildContainer(a.cfg, a.logger, a.chart)
	if err != nil {
		Destroy(App)
		return err
	}
	a.container = c

	a.overlay = view.NewOverlay(c.Tracker, a.cfg.OverlayAlpha, a.logger)
	a.overlay.Open()

	if a.cfg.Debug {
		ctx, cancel := context.WithCancel(context.Background())
		a.stopDebug = cancel
		debug.StartRuntimeLogger(ctx, debugInterval, a.logger, c.Probe)
	}

	c.Loop.Start(tkScheduler{})
	App.Wait()
	return nil
}

// exitHandler stops the loop, cancelling the pending tick, then tears the
// UI down. Runs on the Tk thread.
func (a *desktopApp) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	if a.container != nil {
		if err := a.container.Close(); err != nil {
			a.logger.Warn("capture close failed", "error", err)
		}
	}
	if a.stopDebug != nil {
		a.stopDebug()
	}
	if a.overlay != nil {
		a.overlay.Close()
	}
	a.logger.Info("chart window closed")
	Destroy(App)
}
