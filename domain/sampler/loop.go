// Package sampler drives the sample, score and render cycle that feeds the
// live sharpness chart.
package sampler

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/soocke/focus-meter-go/domain/history"
	"github.com/soocke/focus-meter-go/domain/region"
)

const (
	DefaultTickDelay = 100 * time.Millisecond
	titleFormat      = "Laplacian Variance Indicator [%.1f]"
	yHeadroom        = 1.1
)

// GeometrySource exposes the current overlay geometry. *region.Tracker
// satisfies it.
type GeometrySource interface {
	Geometry() region.Geometry
}

// Capturer grabs the pixels of an absolute screen rectangle.
type Capturer interface {
	Capture(r image.Rectangle) (*image.RGBA, error)
}

// Scorer maps a frame to a non-negative sharpness score.
type Scorer interface {
	Score(img image.Image) float64
}

// Renderer draws the score history. series is a snapshot owned by the
// renderer for the duration of the call.
type Renderer interface {
	Render(series []float64, title string, yMax float64) error
}

// Options wires a Loop. Every field except Logger and TickDelay is required.
type Options struct {
	Geometry  GeometrySource
	Capture   Capturer
	Scorer    Scorer
	History   *history.Buffer
	Renderer  Renderer
	TickDelay time.Duration
	Logger    *slog.Logger
}

// Stats is a snapshot of loop counters.
type Stats struct {
	Ticks        uint64
	Scored       uint64
	Skipped      uint64
	RenderErrors uint64
	LastScore    float64
	LastRect     image.Rectangle
}

// Loop samples the capture rectangle on a fixed cadence, scores it, appends
// the score to the history and redraws the chart. A failed tick is skipped
// and never stops the loop; only Stop does.
type Loop struct {
	opts   Options
	logger *slog.Logger
	state  atomic.Int32

	ticks        atomic.Uint64
	scored       atomic.Uint64
	skipped      atomic.Uint64
	renderErrors atomic.Uint64

	mu        sync.Mutex
	handle    Handle
	lastScore float64
	lastRect  image.Rectangle
	streak    int // consecutive skipped ticks
}

// New validates opts and returns an idle loop.
func New(opts Options) (*Loop, error) {
	switch {
	case opts.Geometry == nil:
		return nil, errors.New("sampler: geometry source is required")
	case opts.Capture == nil:
		return nil, errors.New("sampler: capturer is required")
	case opts.Scorer == nil:
		return nil, errors.New("sampler: scorer is required")
	case opts.History == nil:
		return nil, errors.New("sampler: history buffer is required")
	case opts.Renderer == nil:
		return nil, errors.New("sampler: renderer is required")
	}
	if opts.TickDelay <= 0 {
		opts.TickDelay = DefaultTickDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{opts: opts, logger: logger}, nil
}

// State returns the current phase.
func (l *Loop) State() State { return State(l.state.Load()) }

// TickDelay returns the configured interval between ticks.
func (l *Loop) TickDelay() time.Duration { return l.opts.TickDelay }

// enter moves to next unless the loop was stopped.
func (l *Loop) enter(next State) bool {
	for {
		cur := l.state.Load()
		if State(cur) == StateStopped {
			return false
		}
		if l.state.CompareAndSwap(cur, int32(next)) {
			return true
		}
	}
}

// Tick runs one cycle. Errors and panics are logged and turn the tick into
// a skipped one.
func (l *Loop) Tick() {
	if !l.enter(StateSampling) {
		return
	}
	l.ticks.Add(1)
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("tick panic", "error", r, "stack", string(debug.Stack()))
			l.skip("panic", fmt.Errorf("panic: %v", r))
		}
		l.enter(StateIdle)
	}()

	rect, err := l.opts.Geometry.Geometry().CaptureRect()
	if err != nil {
		l.skip("degenerate_region", err)
		return
	}
	img, err := l.opts.Capture.Capture(rect)
	if err != nil {
		l.skip("capture_failed", err)
		return
	}
	if !l.enter(StateScoring) {
		return
	}
	score := l.opts.Scorer.Score(img)
	if !l.enter(StateRendering) {
		return
	}
	l.opts.History.Append(score)
	l.scored.Add(1)
	l.succeed(score, rect)

	series := l.opts.History.Values()
	if err := l.opts.Renderer.Render(series, Title(score), YMax(series)); err != nil {
		l.renderErrors.Add(1)
		l.logger.Warn("render failed", "error", err)
	}
}

func (l *Loop) skip(reason string, err error) {
	l.skipped.Add(1)
	l.mu.Lock()
	l.streak++
	streak := l.streak
	l.mu.Unlock()
	if streak == 1 {
		l.logger.Warn("tick skipped", "reason", reason, "error", err)
		return
	}
	l.logger.Debug("tick skipped", "reason", reason, "error", err, "streak", streak)
}

func (l *Loop) succeed(score float64, rect image.Rectangle) {
	l.mu.Lock()
	streak := l.streak
	l.streak = 0
	l.lastScore = score
	l.lastRect = rect
	l.mu.Unlock()
	if streak > 0 {
		l.logger.Info("sampling recovered", "skipped", streak, "rect", rect.String())
	}
}

// Start schedules Tick every TickDelay on s. Starting a running or stopped
// loop does nothing.
func (l *Loop) Start(s Scheduler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	// Stop sets the state before taking mu; a handle stored here is one Stop
	// will cancel.
	if l.State() == StateStopped || l.handle != nil {
		return
	}
	l.handle = s.Every(l.opts.TickDelay, l.Tick)
	l.logger.Info("sampler started", "tick_delay", l.opts.TickDelay, "history", l.opts.History.Capacity())
}

// Stop cancels the pending tick and enters the terminal Stopped state. A
// tick already in flight finishes without rendering. Stop is idempotent.
func (l *Loop) Stop() {
	if State(l.state.Swap(int32(StateStopped))) == StateStopped {
		return
	}
	l.mu.Lock()
	h := l.handle
	l.handle = nil
	l.mu.Unlock()
	if h != nil {
		h.Cancel()
	}
	st := l.Stats()
	l.logger.Info("sampler stopped", "ticks", st.Ticks, "scored", st.Scored, "skipped", st.Skipped)
}

// Stats returns a snapshot of the counters.
func (l *Loop) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Stats{
		Ticks:        l.ticks.Load(),
		Scored:       l.scored.Load(),
		Skipped:      l.skipped.Load(),
		RenderErrors: l.renderErrors.Load(),
		LastScore:    l.lastScore,
		LastRect:     l.lastRect,
	}
}

// Title formats the chart title for the latest score.
func Title(score float64) string { return fmt.Sprintf(titleFormat, score) }

// YMax returns the y-axis upper bound: the series peak plus 10% headroom.
// An empty series yields 0.
func YMax(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return floats.Max(series) * yHeadroom
}
