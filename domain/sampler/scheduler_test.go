package sampler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerScheduler_RunsUntilCancelled(t *testing.T) {
	s := NewTickerScheduler(context.Background())
	var n atomic.Int32
	h := s.Every(time.Millisecond, func() { n.Add(1) })
	deadline := time.Now().Add(2 * time.Second)
	for n.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Cancel()
	h.Cancel()
	s.Wait()
	if n.Load() < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", n.Load())
	}
	after := n.Load()
	time.Sleep(10 * time.Millisecond)
	if n.Load() != after {
		t.Fatalf("ticks continued after cancel")
	}
}

func TestTickerScheduler_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewTickerScheduler(ctx)
	s.Every(time.Millisecond, func() {})
	cancel()
	done := make(chan struct{})
	go func() { s.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("scheduler did not stop on context cancel")
	}
}

func TestTickerScheduler_NoOverlap(t *testing.T) {
	s := NewTickerScheduler(context.Background())
	var active, overlaps, runs atomic.Int32
	h := s.Every(time.Millisecond, func() {
		if active.Add(1) > 1 {
			overlaps.Add(1)
		}
		time.Sleep(3 * time.Millisecond)
		active.Add(-1)
		runs.Add(1)
	})
	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 5 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Cancel()
	s.Wait()
	if overlaps.Load() != 0 {
		t.Fatalf("ticks overlapped %d times", overlaps.Load())
	}
}
