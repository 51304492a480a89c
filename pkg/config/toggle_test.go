// Test Type: Unit Test
// Verifies the master-toggle cascade and that it never mutates its input.

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/headline/pkg/config"
)

func TestApplyMasterToggle(t *testing.T) {
	t.Run("disabling_alias_forces_dependents_off", func(t *testing.T) {
		s := config.Default()
		s.Alias.Enabled = true
		s.Alias.OnlyWhenDiffers = true
		s.Alias.KeepEmptyOff = true

		out := config.ApplyMasterToggle(s, "alias", false)

		assert.False(t, out.Alias.Enabled)
		assert.False(t, out.Alias.OnlyWhenDiffers)
		assert.False(t, out.Alias.KeepEmptyOff)
	})

	t.Run("enabling_alias_leaves_dependents_alone", func(t *testing.T) {
		s := config.Default()
		s.Alias.OnlyWhenDiffers = true

		out := config.ApplyMasterToggle(s, "alias", true)

		assert.True(t, out.Alias.Enabled)
		assert.True(t, out.Alias.OnlyWhenDiffers, "dependent keeps its previous value")
	})

	t.Run("disabling_tag_scope_clears_rules", func(t *testing.T) {
		s := config.Default()
		s.Scope.Tags.Tags = []string{"draft", "private"}
		s.Scope.Tags.MatchChildren = true

		out := config.ApplyMasterToggle(s, "scope.tags", false)

		assert.Empty(t, out.Scope.Tags.Tags)
		assert.False(t, out.Scope.Tags.MatchChildren)
	})

	t.Run("disabling_cursor_clears_end_placement", func(t *testing.T) {
		s := config.Default()
		s.Title.PlaceCursorAtEnd = true

		out := config.ApplyMasterToggle(s, "cursor", false)

		assert.False(t, out.Title.MoveCursorToFirstLine)
		assert.False(t, out.Title.PlaceCursorAtEnd)
	})

	t.Run("input_is_not_mutated", func(t *testing.T) {
		s := config.Default()
		s.Alias.Enabled = true
		s.Alias.OnlyWhenDiffers = true

		_ = config.ApplyMasterToggle(s, "alias", false)

		assert.True(t, s.Alias.Enabled)
		assert.True(t, s.Alias.OnlyWhenDiffers)
	})

	t.Run("unknown_category_is_a_noop", func(t *testing.T) {
		s := config.Default()
		out := config.ApplyMasterToggle(s, "bogus", false)
		assert.Equal(t, s, out)
	})
}

func TestSubscribePublish(t *testing.T) {
	t.Run("keyed_subscriber_sees_matching_publish", func(t *testing.T) {
		var got []int
		config.Subscribe("replacements", func(s config.Settings) {
			got = append(got, s.Title.MaxLength)
		})

		s := config.Default()
		s.Title.MaxLength = 42
		config.Publish(s, "replacements")

		assert.Equal(t, []int{42}, got)
	})

	t.Run("keyed_subscriber_ignores_other_keys", func(t *testing.T) {
		calls := 0
		config.Subscribe("scope", func(config.Settings) { calls++ })

		config.Publish(config.Default(), "alias")

		assert.Zero(t, calls)
	})

	t.Run("catch_all_sees_everything", func(t *testing.T) {
		calls := 0
		config.Subscribe("", func(config.Settings) { calls++ })

		config.Publish(config.Default(), "alias")
		config.Publish(config.Default(), "scope", "replacements")

		assert.Equal(t, 2, calls)
	})
}
