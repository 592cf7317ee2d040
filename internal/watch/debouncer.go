package watch

import (
	"sync"
	"time"
)

// DefaultDebounce is how long the watcher waits for a burst of file events
// to settle before announcing a change. Exports are written in several
// quick syscalls; one notification per rewrite is enough.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces rapid triggers into the single most recent callback.
type Debouncer struct {
	window time.Duration
	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
}

// NewDebouncer creates a debouncer; zero window means DefaultDebounce.
func NewDebouncer(window time.Duration) *Debouncer {
	if window == 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window}
}

// Trigger schedules fn after the window, replacing any pending callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		// A timer can fire between a later Trigger's Stop and reschedule;
		// the sequence check keeps only the newest callback alive.
		stale := seq != d.seq
		if !stale {
			d.timer = nil
		}
		d.mu.Unlock()

		if !stale {
			fn()
		}
	})
}

// Cancel drops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
