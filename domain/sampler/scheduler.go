package sampler

import (
	"context"
	"sync"
	"time"
)

// Handle cancels a recurring callback. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler runs fn every d until the returned handle is cancelled. fn must
// never be invoked concurrently with itself.
type Scheduler interface {
	Every(d time.Duration, fn func()) Handle
}

// TickerScheduler drives callbacks from a goroutine per registration. Ticks
// of one registration run strictly one after another; a slow tick delays the
// next one instead of overlapping it.
type TickerScheduler struct {
	ctx context.Context
	wg  sync.WaitGroup
}

// NewTickerScheduler returns a scheduler whose callbacks stop when ctx is done.
func NewTickerScheduler(ctx context.Context) *TickerScheduler {
	if ctx == nil {
		ctx = context.Background()
	}
	return &TickerScheduler{ctx: ctx}
}

func (s *TickerScheduler) Every(d time.Duration, fn func()) Handle {
	ctx, cancel := context.WithCancel(s.ctx)
	h := &tickerHandle{cancel: cancel}
	if d <= 0 {
		d = time.Millisecond
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTicker(d)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				// Cancel may race with the ticker firing.
				if ctx.Err() != nil {
					return
				}
				fn()
			}
		}
	}()
	return h
}

// Wait blocks until every registered callback goroutine has exited.
func (s *TickerScheduler) Wait() { s.wg.Wait() }

type tickerHandle struct {
	once   sync.Once
	cancel context.CancelFunc
}

func (h *tickerHandle) Cancel() { h.once.Do(h.cancel) }
