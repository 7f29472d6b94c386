package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soocke/focus-meter-go/app"
	"github.com/soocke/focus-meter-go/app/desktop"
	"github.com/soocke/focus-meter-go/config"
)

type cliOptions struct {
	configPath string
	envFile    string
	size       int
	border     int
	history    int
	delayMS    int
	backend    string
	chart      string
	logLevel   string
	headless   bool
	debug      bool
	x, y       int
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	def := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:           "focus-meter",
		Short:         "Live Laplacian-variance sharpness indicator for a screen region",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.size, "size", "s", def.Size, "Initial frame width and height in pixels")
	f.IntVarP(&opts.border, "border", "b", def.Border, "Frame border thickness excluded from sampling")
	f.IntVarP(&opts.history, "number", "n", def.HistoryLength, "Number of scores kept in the chart")
	f.IntVarP(&opts.delayMS, "delay", "d", def.TickDelayMS, "Sampling interval in milliseconds")
	f.StringVar(&opts.backend, "backend", def.Backend, "Capture backend: screenshot, display or gdi")
	f.StringVar(&opts.chart, "chart", def.Chart, "Chart redraw strategy: blit or full")
	f.BoolVar(&opts.headless, "headless", false, "Sample without windows and log scores")
	f.IntVar(&opts.x, "x", 0, "Frame left edge (default: centered)")
	f.IntVar(&opts.y, "y", 0, "Frame top edge (default: centered)")
	f.StringVar(&opts.configPath, "config", "", "Path to a JSON config file")
	f.StringVar(&opts.envFile, "env-file", ".env", "Path to a dotenv file")
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging and runtime stats")
	f.StringVar(&opts.logLevel, "log-level", def.LogLevel, "Log level: debug, info, warn or error")
	return cmd
}

// loadConfig layers defaults, the JSON file, the environment and explicitly
// set flags, in that order.
func loadConfig(cmd *cobra.Command, opts *cliOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", opts.configPath, err)
	}
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	f := cmd.Flags()
	var o config.Overrides
	if f.Changed("size") {
		o.Size = &opts.size
	}
	if f.Changed("border") {
		o.Border = &opts.border
	}
	if f.Changed("number") {
		o.HistoryLength = &opts.history
	}
	if f.Changed("delay") {
		o.TickDelayMS = &opts.delayMS
	}
	if f.Changed("backend") {
		o.Backend = &opts.backend
	}
	if f.Changed("chart") {
		o.Chart = &opts.chart
	}
	if f.Changed("headless") {
		o.Headless = &opts.headless
	}
	if f.Changed("debug") {
		o.Debug = &opts.debug
	}
	if f.Changed("log-level") {
		o.LogLevel = &opts.logLevel
	}
	if f.Changed("x") {
		o.X = &opts.x
	}
	if f.Changed("y") {
		o.Y = &opts.y
	}
	if err := cfg.Apply(o); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg.Level())
	logger.Info("starting", "headless", cfg.Headless, "backend", cfg.Backend, "chart", cfg.Chart)
	if cfg.Headless {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return app.RunHeadless(ctx, cfg, logger)
	}
	return desktop.NewApp(cfg, logger).Start()
}
