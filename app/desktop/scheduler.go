package desktop

import (
	"time"

	"github.com/soocke/focus-meter-go/domain/sampler"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// tkScheduler runs callbacks on Tk's event loop thread via TclAfter. The next
// run is scheduled after the current one returns, so runs never overlap.
type tkScheduler struct{}

func (tkScheduler) Every(d time.Duration, fn func()) sampler.Handle {
	h := &tkHandle{}
	var run func()
	run = func() {
		h.id = ""
		if h.canceled {
			return
		}
		fn()
		if h.canceled {
			return
		}
		h.id = TclAfter(d, run)
	}
	h.id = TclAfter(d, run)
	return h
}

type tkHandle struct {
	id       string
	canceled bool
}

// Cancel drops the pending callback. Only called from the Tk thread.
func (h *tkHandle) Cancel() {
	if h.canceled {
		return
	}
	h.canceled = true
	if h.id != "" {
		TclAfterCancel(h.id)
		h.id = ""
	}
}
