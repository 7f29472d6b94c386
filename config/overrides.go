package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOption reports an unrecognised backend or chart name.
var ErrUnknownOption = errors.New("unknown option value")

// Overrides carries explicitly set command-line values. Nil fields leave the
// config untouched.
type Overrides struct {
	Size          *int
	Border        *int
	HistoryLength *int
	TickDelayMS   *int
	Backend       *string
	Chart         *string
	Headless      *bool
	Debug         *bool
	LogLevel      *string
	X             *int
	Y             *int
}

// Apply copies the set fields of o into c and validates the result. Unknown
// backend or chart names are rejected rather than silently replaced.
func (c *Config) Apply(o Overrides) error {
	if o.Backend != nil {
		switch b := strings.ToLower(strings.TrimSpace(*o.Backend)); b {
		case BackendScreenshot, BackendDisplay, BackendGDI:
			c.Backend = b
		default:
			return fmt.Errorf("%w: backend %q", ErrUnknownOption, *o.Backend)
		}
	}
	if o.Chart != nil {
		switch ch := strings.ToLower(strings.TrimSpace(*o.Chart)); ch {
		case ChartBlit, ChartFull:
			c.Chart = ch
		default:
			return fmt.Errorf("%w: chart %q", ErrUnknownOption, *o.Chart)
		}
	}
	if o.LogLevel != nil {
		if _, ok := parseLevel(*o.LogLevel); !ok {
			return fmt.Errorf("%w: log level %q", ErrUnknownOption, *o.LogLevel)
		}
		c.LogLevel = *o.LogLevel
	}
	setInt := func(src *int, dst *int) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(o.Size, &c.Size)
	setInt(o.Border, &c.Border)
	setInt(o.HistoryLength, &c.HistoryLength)
	setInt(o.TickDelayMS, &c.TickDelayMS)
	if o.Headless != nil {
		c.Headless = *o.Headless
	}
	if o.Debug != nil {
		c.Debug = *o.Debug
	}
	if o.X != nil {
		x := *o.X
		c.X = &x
	}
	if o.Y != nil {
		y := *o.Y
		c.Y = &y
	}
	return c.Validate()
}
