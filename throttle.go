package vlist

import "time"

// throttle coalesces a burst of triggers into at most one execution per
// interval: the first trigger of a burst runs immediately (leading edge) and
// triggers arriving inside the interval are deferred into exactly one
// trailing run. Simple rate limiting that drops trailing updates would lose
// the final cursor position of a scroll burst.
//
// Not safe for concurrent use; it belongs to the coordinator goroutine.
type throttle struct {
	interval time.Duration
	last     time.Time
	pending  bool
	timer    *time.Timer

	// now is replaceable in tests.
	now func() time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: interval, now: time.Now}
}

// c returns the trailing timer's channel, or nil when no trailing run is
// armed. A nil channel blocks forever in a select, which is exactly what the
// coordinator loop wants.
func (t *throttle) c() <-chan time.Time {
	if t.timer == nil {
		return nil
	}
	return t.timer.C
}

// trigger reports whether the caller should run now. When false, a trailing
// run has been armed and will arrive on c().
func (t *throttle) trigger() bool {
	if t.interval <= 0 {
		return true
	}
	now := t.now()
	if elapsed := now.Sub(t.last); elapsed >= t.interval {
		t.last = now
		return true
	}
	if !t.pending {
		t.pending = true
		t.timer = time.NewTimer(t.interval - now.Sub(t.last))
	}
	return false
}

// fired consumes a trailing expiry and reports whether a deferred run is
// due.
func (t *throttle) fired() bool {
	t.timer = nil
	if !t.pending {
		return false
	}
	t.pending = false
	t.last = t.now()
	return true
}

// stop cancels any armed trailing run.
func (t *throttle) stop() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.pending = false
}
