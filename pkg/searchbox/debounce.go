package searchbox

import (
	"sync"
	"time"
)

// Debouncer runs the most recently armed function after a quiet period.
// Re-arming cancels the previous timer, so at most one fire happens per
// quiet interval and it always carries the latest armed function.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger cancels any armed timer and arms a new one for fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		fired := d.pending
		d.pending = nil
		d.timer = nil
		d.mu.Unlock()

		if fired != nil {
			fired()
		}
	})
}

// Cancel stops the armed timer, if any, and drops the pending function.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}

// FireNow runs the pending function immediately, bypassing the timer.
// It reports whether anything was armed.
func (d *Debouncer) FireNow() bool {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	fired := d.pending
	d.pending = nil
	d.mu.Unlock()

	if fired == nil {
		return false
	}
	fired()
	return true
}
