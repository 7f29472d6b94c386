package capture

import (
	"image"
	"time"
)

// Stats summarises adapter behaviour for instrumentation.
type Stats struct {
	Captures    uint64
	Failures    uint64
	AvgCapture  time.Duration
	LastCapture time.Time
	LastRect    image.Rectangle
}
