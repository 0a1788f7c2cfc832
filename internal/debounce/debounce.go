// Package debounce implements a reset-on-input timer: rapid triggers are
// coalesced so that the action runs once, after a quiet period with no new
// triggers. The client uses it for search input, the server watcher for
// change-notification bursts.
package debounce

import (
	"sync"
	"time"
)

type Debouncer struct {
	quiet time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New returns a Debouncer with the given quiet period.
func New(quiet time.Duration) *Debouncer {
	return &Debouncer{quiet: quiet}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// previously scheduled run. Only the fn of the last Trigger before the
// timer fires is executed, on the timer's goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, fn)
}

// Stop cancels any pending run. It does not wait for a running fn.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
