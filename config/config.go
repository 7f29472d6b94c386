package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
)

// Capture backend and chart strategy names accepted by Validate.
const (
	BackendScreenshot = "screenshot"
	BackendDisplay    = "display"
	BackendGDI        = "gdi"

	ChartBlit = "blit"
	ChartFull = "full"
)

// Config holds runtime configuration for the indicator.
// Fields may be loaded from a JSON file, the environment and command-line flags.
type Config struct {
	Debug    bool   `json:"debug"`
	LogLevel string `json:"log_level"`
	Headless bool   `json:"headless"`

	// Overlay frame
	Size   int `json:"size"`
	Border int `json:"border"`
	// X/Y place the frame; nil centers it on the primary screen.
	X *int `json:"x,omitempty"`
	Y *int `json:"y,omitempty"`

	OverlayAlpha float64 `json:"overlay_alpha"`

	// Sampling
	HistoryLength int     `json:"history_length"`
	TickDelayMS   int     `json:"tick_delay_ms"`
	Backend       string  `json:"backend"`
	AnalysisScale float64 `json:"analysis_scale"`

	// Chart
	Chart       string `json:"chart"`
	ChartWidth  int    `json:"chart_width"`
	ChartHeight int    `json:"chart_height"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:         false,
		LogLevel:      "info",
		Size:          200,
		Border:        8,
		OverlayAlpha:  0.5,
		HistoryLength: 30,
		TickDelayMS:   100,
		Backend:       BackendScreenshot,
		AnalysisScale: 1.0,
		Chart:         ChartBlit,
		ChartWidth:    640,
		ChartHeight:   400,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.Size < 3 {
		c.Size = 3
	}
	if c.Border < 0 {
		c.Border = 0
	}
	if c.HistoryLength < 1 {
		c.HistoryLength = 1
	}
	if c.TickDelayMS < 1 {
		c.TickDelayMS = 1
	}
	if c.OverlayAlpha <= 0 || c.OverlayAlpha > 1 {
		c.OverlayAlpha = 0.5
	}
	if c.AnalysisScale <= 0 || c.AnalysisScale > 1 {
		c.AnalysisScale = 1.0
	}
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendScreenshot, BackendDisplay, BackendGDI:
	default:
		c.Backend = BackendScreenshot
	}
	c.Chart = strings.ToLower(strings.TrimSpace(c.Chart))
	switch c.Chart {
	case ChartBlit, ChartFull:
	default:
		c.Chart = ChartBlit
	}
	if c.ChartWidth < 160 {
		c.ChartWidth = 640
	}
	if c.ChartHeight < 120 {
		c.ChartHeight = 400
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		c.LogLevel = "info"
	}
	return nil
}

// Level returns the slog level for LogLevel; Debug forces debug.
func (c *Config) Level() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, bool) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, false
	}
	return l, true
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
