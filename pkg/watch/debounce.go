package watch

import (
	"sync"
	"time"
)

// Debouncer collapses repeated events for the same key inside a time window.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	seen   map[string]time.Time
}

// NewDebouncer creates a Debouncer with the given window. A zero window
// allows everything.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window: window,
		seen:   make(map[string]time.Time),
	}
}

// Allow reports whether an event for key at time now should pass. The first
// event for a key always passes; later ones pass once the window since the
// last allowed event has elapsed.
func (d *Debouncer) Allow(key string, now time.Time) bool {
	if d.window <= 0 {
		return true
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.seen[key]; ok && now.Sub(last) < d.window {
		return false
	}
	d.seen[key] = now

	// Opportunistic cleanup so long runs don't accumulate entries.
	if len(d.seen) > 1024 {
		for k, t := range d.seen {
			if now.Sub(t) >= d.window {
				delete(d.seen, k)
			}
		}
	}
	return true
}
