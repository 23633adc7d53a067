package theme

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. The default wraps time.AfterFunc; tests
// substitute a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer coalesces bursts of Trigger calls into one trailing call of fn.
// Each Trigger cancels the pending call and reschedules it.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	after   AfterFunc
	timer   Timer
	gen     uint64 // bumped on every reschedule or cancel; stale timers compare and bail
	pending bool
	stopped bool
}

// NewDebouncer returns a debouncer calling fn delay after the last Trigger.
// A nil after uses real timers.
func NewDebouncer(delay time.Duration, fn func(), after AfterFunc) *Debouncer {
	if after == nil {
		after = realAfterFunc
	}
	return &Debouncer{delay: delay, fn: fn, after: after}
}

// Trigger (re)schedules the trailing call.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.cancelLocked()
	d.pending = true
	gen := d.gen
	d.timer = d.after(d.delay, func() { d.fire(gen) })
}

// Flush runs a pending call immediately in the caller's goroutine. It
// reports whether a call was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	d.cancelLocked()
	d.mu.Unlock()

	d.fn()
	return true
}

// Cancel drops a pending call without running it. It reports whether a call
// was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	was := d.pending
	d.cancelLocked()
	return was
}

// Stop cancels any pending call and makes future Triggers no-ops.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

// Pending reports whether a trailing call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) cancelLocked() {
	d.gen++
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}
