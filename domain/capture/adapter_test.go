package capture

import (
	"errors"
	"image"
	"testing"
)

type fakeBackend struct {
	screen    image.Rectangle
	boundsErr error
	err       error
	panicMsg  string
	calls     []image.Rectangle
	closed    int
}

func (f *fakeBackend) Name() string                     { return "fake" }
func (f *fakeBackend) Bounds() (image.Rectangle, error) { return f.screen, f.boundsErr }
func (f *fakeBackend) Close() error                     { f.closed++; return nil }

func (f *fakeBackend) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	f.calls = append(f.calls, r)
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return nil, f.err
	}
	return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), nil
}

func newFake() *fakeBackend { return &fakeBackend{screen: image.Rect(0, 0, 1920, 1080)} }

func TestAdapter_CapturesInsideScreen(t *testing.T) {
	fb := newFake()
	a := NewAdapter(fb, nil)
	img, err := a.Capture(image.Rect(10, 20, 60, 70))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 50 {
		t.Fatalf("unexpected frame size %v", img.Bounds())
	}
	if st := a.Stats(); st.Captures != 1 || st.Failures != 0 || st.LastRect != image.Rect(10, 20, 60, 70) {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestAdapter_EmptyRectSkipsBackend(t *testing.T) {
	fb := newFake()
	a := NewAdapter(fb, nil)
	_, err := a.Capture(image.Rect(5, 5, 5, 40))
	if !errors.Is(err, ErrEmptyRect) || !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("expected empty rect capture failure, got %v", err)
	}
	if len(fb.calls) != 0 {
		t.Fatalf("backend must not be called, got %d calls", len(fb.calls))
	}
	if a.Stats().Failures != 1 {
		t.Fatalf("failure not counted")
	}
}

func TestAdapter_ClipsPartiallyOffScreen(t *testing.T) {
	fb := newFake()
	a := NewAdapter(fb, nil)
	req := image.Rect(-30, 1060, 20, 1100)
	img, err := a.Capture(req)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if img.Bounds().Size() == req.Size() {
		t.Fatalf("clipped frame should be smaller than the request")
	}
	if fb.calls[0] != image.Rect(0, 1060, 20, 1080) {
		t.Fatalf("expected clipped rect, got %v", fb.calls[0])
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Fatalf("unexpected frame %v", img.Bounds())
	}
}

func TestAdapter_FullyOffScreen(t *testing.T) {
	fb := newFake()
	a := NewAdapter(fb, nil)
	_, err := a.Capture(image.Rect(2000, 10, 2100, 110))
	if !errors.Is(err, ErrOffScreen) {
		t.Fatalf("expected ErrOffScreen, got %v", err)
	}
	var ce *CaptureError
	if !errors.As(err, &ce) || ce.Backend != "fake" {
		t.Fatalf("expected *CaptureError, got %T", err)
	}
	if len(fb.calls) != 0 {
		t.Fatalf("backend must not be called")
	}
}

func TestAdapter_BackendErrorWrapped(t *testing.T) {
	cause := errors.New("device lost")
	fb := newFake()
	fb.err = cause
	a := NewAdapter(fb, nil)
	_, err := a.Capture(image.Rect(0, 0, 10, 10))
	if !errors.Is(err, cause) || !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if len(fb.calls) != 1 {
		t.Fatalf("adapter must not retry, got %d calls", len(fb.calls))
	}
}

func TestAdapter_BoundsError(t *testing.T) {
	fb := newFake()
	fb.boundsErr = ErrBackendUnavailable
	_, err := NewAdapter(fb, nil).Capture(image.Rect(0, 0, 10, 10))
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestAdapter_PanicBecomesError(t *testing.T) {
	fb := newFake()
	fb.panicMsg = "boom"
	_, err := NewAdapter(fb, nil).Capture(image.Rect(0, 0, 10, 10))
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("expected capture failure, got %v", err)
	}
}

func TestAdapter_CloseReleasesBackend(t *testing.T) {
	fb := newFake()
	if err := NewAdapter(fb, nil).Close(); err != nil || fb.closed != 1 {
		t.Fatalf("close err=%v closed=%d", err, fb.closed)
	}
	if err := NewAdapter(nil, nil).Close(); err != nil {
		t.Fatalf("nil backend close: %v", err)
	}
	if _, err := NewAdapter(nil, nil).Capture(image.Rect(0, 0, 1, 1)); !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("nil backend capture: %v", err)
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	if _, err := NewBackend("bogus"); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected unknown backend, got %v", err)
	}
	names := Backends()
	if len(names) != 3 || names[0] != BackendDisplay || names[1] != BackendGDI || names[2] != BackendScreenshot {
		t.Fatalf("unexpected backends %v", names)
	}
}
