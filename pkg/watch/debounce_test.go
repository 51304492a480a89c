// Test Type: Unit Test
// Description: Tests for the watch package - per-path event debouncing

package watch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/headline/pkg/watch"
)

func TestDebouncer_Allow(t *testing.T) {
	t.Run("first_event_passes", func(t *testing.T) {
		d := watch.NewDebouncer(100 * time.Millisecond)
		now := time.Now()

		assert.True(t, d.Allow("a.md", now))
	})

	t.Run("duplicate_inside_window_is_dropped", func(t *testing.T) {
		d := watch.NewDebouncer(100 * time.Millisecond)
		now := time.Now()

		assert.True(t, d.Allow("a.md", now))
		assert.False(t, d.Allow("a.md", now.Add(50*time.Millisecond)))
	})

	t.Run("event_after_window_passes", func(t *testing.T) {
		d := watch.NewDebouncer(100 * time.Millisecond)
		now := time.Now()

		assert.True(t, d.Allow("a.md", now))
		assert.True(t, d.Allow("a.md", now.Add(150*time.Millisecond)))
	})

	t.Run("keys_are_independent", func(t *testing.T) {
		d := watch.NewDebouncer(100 * time.Millisecond)
		now := time.Now()

		assert.True(t, d.Allow("a.md", now))
		assert.True(t, d.Allow("b.md", now))
	})

	t.Run("zero_window_allows_everything", func(t *testing.T) {
		d := watch.NewDebouncer(0)
		now := time.Now()

		assert.True(t, d.Allow("a.md", now))
		assert.True(t, d.Allow("a.md", now))
	})
}
