package sampler

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/soocke/focus-meter-go/domain/history"
	"github.com/soocke/focus-meter-go/domain/region"
	"github.com/soocke/focus-meter-go/domain/sharpness"
)

// fakeCapture returns a frame of the requested size. Calls listed in failOn
// (1-based) fail; varying frames get a bright pixel at a call-dependent spot.
type fakeCapture struct {
	calls   int
	rects   []image.Rectangle
	failOn  map[int]bool
	varying bool
	panicOn int
}

func (f *fakeCapture) Capture(r image.Rectangle) (*image.RGBA, error) {
	f.calls++
	f.rects = append(f.rects, r)
	if f.panicOn == f.calls {
		panic("backend exploded")
	}
	if f.failOn[f.calls] {
		return nil, errors.New("transient backend error")
	}
	img := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	if f.varying {
		img.Set(f.calls%r.Dx(), f.calls%r.Dy(), color.RGBA{255, 255, 255, 255})
	}
	return img, nil
}

type fakeRenderer struct {
	calls  int
	series []float64
	title  string
	yMax   float64
	err    error
	onCall func()
}

func (r *fakeRenderer) Render(series []float64, title string, yMax float64) error {
	r.calls++
	r.series, r.title, r.yMax = series, title, yMax
	if r.onCall != nil {
		r.onCall()
	}
	return r.err
}

type manualScheduler struct {
	every    time.Duration
	fn       func()
	handles  int
	canceled int
}

func (s *manualScheduler) Every(d time.Duration, fn func()) Handle {
	s.every, s.fn = d, fn
	s.handles++
	return manualHandle{s}
}

func (s *manualScheduler) fire(n int) {
	for i := 0; i < n; i++ {
		s.fn()
	}
}

type manualHandle struct{ s *manualScheduler }

func (h manualHandle) Cancel() { h.s.canceled++ }

type fixture struct {
	loop     *Loop
	tracker  *region.Tracker
	capture  *fakeCapture
	renderer *fakeRenderer
	hist     *history.Buffer
	sched    *manualScheduler
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()
	f := &fixture{
		tracker:  region.NewTracker(region.Geometry{X: 100, Y: 100, Width: 56, Height: 56, Border: 3}, nil),
		capture:  &fakeCapture{failOn: map[int]bool{}},
		renderer: &fakeRenderer{},
		hist:     history.New(capacity),
		sched:    &manualScheduler{},
	}
	l, err := New(Options{
		Geometry:  f.tracker,
		Capture:   f.capture,
		Scorer:    sharpness.NewScorer(sharpness.Options{}),
		History:   f.hist,
		Renderer:  f.renderer,
		TickDelay: 100 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.loop = l
	return f
}

func TestLoop_FlatFramesFillHistoryWithZeros(t *testing.T) {
	f := newFixture(t, 30)
	f.loop.Start(f.sched)
	if f.sched.every != 100*time.Millisecond {
		t.Fatalf("unexpected tick delay %v", f.sched.every)
	}
	f.sched.fire(35)
	vals := f.hist.Values()
	if len(vals) != 30 {
		t.Fatalf("expected 30 entries, got %d", len(vals))
	}
	for i, v := range vals {
		if v != 0 {
			t.Fatalf("entry %d = %v, want 0", i, v)
		}
	}
	if f.capture.rects[0].Dx() != 50 || f.capture.rects[0].Dy() != 50 {
		t.Fatalf("unexpected capture rect %v", f.capture.rects[0])
	}
	if f.renderer.calls != 35 || f.renderer.title != "Laplacian Variance Indicator [0.0]" {
		t.Fatalf("renderer calls=%d title=%q", f.renderer.calls, f.renderer.title)
	}
	if f.loop.State() != StateIdle {
		t.Fatalf("expected idle, got %v", f.loop.State())
	}
}

func TestLoop_CaptureFailureSkipsTick(t *testing.T) {
	f := newFixture(t, 30)
	f.capture.varying = true
	f.capture.failOn[3] = true
	f.loop.Start(f.sched)
	f.sched.fire(5)
	if f.hist.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", f.hist.Len())
	}
	st := f.loop.Stats()
	if st.Ticks != 5 || st.Scored != 4 || st.Skipped != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if f.renderer.calls != 4 {
		t.Fatalf("skipped tick must not render, calls=%d", f.renderer.calls)
	}
	if f.loop.State() == StateStopped {
		t.Fatalf("loop must keep running")
	}
}

func TestLoop_DragMovesNextRect(t *testing.T) {
	f := newFixture(t, 30)
	f.loop.Tick()
	f.tracker.MoveTo(400, 300)
	f.loop.Tick()
	want := image.Rect(403, 303, 453, 353)
	if got := f.capture.rects[1]; got != want {
		t.Fatalf("next tick captured %v, want %v", got, want)
	}
	if f.loop.Stats().LastRect != want {
		t.Fatalf("stats rect not updated")
	}
}

func TestLoop_DegenerateRegionSkipsCapture(t *testing.T) {
	f := newFixture(t, 30)
	f.tracker = region.NewTracker(region.Geometry{Width: 10, Height: 40, Border: 5}, nil)
	f.loop.opts.Geometry = f.tracker
	f.loop.Tick()
	if f.capture.calls != 0 {
		t.Fatalf("capture must not be called for a degenerate region")
	}
	if f.loop.Stats().Skipped != 1 || f.hist.Len() != 0 {
		t.Fatalf("tick should be skipped")
	}
}

func TestLoop_PanicIsRecovered(t *testing.T) {
	f := newFixture(t, 30)
	f.capture.panicOn = 2
	f.loop.Start(f.sched)
	f.sched.fire(3)
	if f.hist.Len() != 2 || f.loop.Stats().Skipped != 1 {
		t.Fatalf("panic tick should be skipped: len=%d stats=%+v", f.hist.Len(), f.loop.Stats())
	}
	if f.loop.State() != StateIdle {
		t.Fatalf("expected idle after recovery, got %v", f.loop.State())
	}
}

func TestLoop_RenderErrorKeepsRunning(t *testing.T) {
	f := newFixture(t, 30)
	f.renderer.err = errors.New("display gone")
	f.loop.Tick()
	f.loop.Tick()
	st := f.loop.Stats()
	if st.RenderErrors != 2 || f.hist.Len() != 2 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestLoop_YAxisAndTitle(t *testing.T) {
	f := newFixture(t, 30)
	f.capture.varying = true
	f.loop.Tick()
	last, _ := f.hist.Latest()
	if f.renderer.title != Title(last) {
		t.Fatalf("title %q does not carry latest score %v", f.renderer.title, last)
	}
	if f.renderer.yMax != last*1.1 {
		t.Fatalf("yMax %v, want %v", f.renderer.yMax, last*1.1)
	}
}

func TestLoop_StopCancelsAndIsTerminal(t *testing.T) {
	f := newFixture(t, 30)
	f.loop.Start(f.sched)
	f.loop.Start(f.sched)
	if f.sched.handles != 1 {
		t.Fatalf("Start must be idempotent, handles=%d", f.sched.handles)
	}
	f.loop.Stop()
	f.loop.Stop()
	if f.sched.canceled != 1 {
		t.Fatalf("expected one cancel, got %d", f.sched.canceled)
	}
	f.loop.Tick()
	if f.capture.calls != 0 || f.loop.State() != StateStopped {
		t.Fatalf("stopped loop must not tick")
	}
	f.loop.Start(f.sched)
	if f.sched.handles != 1 {
		t.Fatalf("stopped loop must not restart")
	}
}

func TestLoop_StartRacingStopRegistersNothing(t *testing.T) {
	f := newFixture(t, 30)
	// hold the lock the way Stop does after it has flipped the state
	f.loop.mu.Lock()
	done := make(chan struct{})
	go func() {
		f.loop.Start(f.sched)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	f.loop.state.Store(int32(StateStopped))
	f.loop.mu.Unlock()
	<-done
	if f.sched.handles != 0 {
		t.Fatalf("Start after Stop must not schedule, handles=%d", f.sched.handles)
	}
	f.loop.mu.Lock()
	defer f.loop.mu.Unlock()
	if f.loop.handle != nil {
		t.Fatalf("stopped loop kept a handle")
	}
}

func TestLoop_StopDuringTickSkipsRender(t *testing.T) {
	f := newFixture(t, 30)
	f.loop.opts.Scorer = stopScorer{f.loop}
	f.loop.Tick()
	if f.renderer.calls != 0 {
		t.Fatalf("tick in flight during Stop must not render")
	}
	if f.loop.State() != StateStopped {
		t.Fatalf("expected stopped, got %v", f.loop.State())
	}
}

// stopScorer stops the loop mid-tick, as closing the chart window would.
type stopScorer struct{ loop *Loop }

func (s stopScorer) Score(image.Image) float64 {
	s.loop.Stop()
	return 1
}

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error for empty options")
	}
}

func TestYMax(t *testing.T) {
	if YMax(nil) != 0 {
		t.Fatalf("empty series")
	}
	if got := YMax([]float64{1, 10, 4}); got != 10*1.1 {
		t.Fatalf("got %v", got)
	}
}

func TestStateString(t *testing.T) {
	if StateRendering.String() != "rendering" || State(42).String() != "unknown" {
		t.Fatalf("unexpected names")
	}
}
