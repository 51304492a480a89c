// Test Type: Unit Test
// Description: Tests for the rename package - creation-event coordination and write verification

package rename_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/headline/pkg/config"
	"github.com/arthur-debert/headline/pkg/rename"
	"github.com/arthur-debert/headline/pkg/testutil"
	"github.com/arthur-debert/headline/pkg/types"
	"github.com/arthur-debert/headline/pkg/vault"
)

// fakeEditor simulates a live editor buffer. failures makes the first N
// writes invisible, the way an editor behaves while the host is still
// flushing a concurrent template insert.
type fakeEditor struct {
	content  string
	failures int
	writes   int
	cursor   *types.Position
}

func (e *fakeEditor) Value() string { return e.content }

func (e *fakeEditor) ReplaceRange(text string, pos types.Position) {
	e.writes++
	if e.writes <= e.failures {
		return // write swallowed by the concurrent edit
	}
	lines := strings.Split(e.content, "\n")
	for len(lines) <= pos.Line {
		lines = append(lines, "")
	}
	line := []rune(lines[pos.Line])
	ch := pos.Ch
	if ch > len(line) {
		ch = len(line)
	}
	lines[pos.Line] = string(line[:ch]) + text + string(line[ch:])
	e.content = strings.Join(lines, "\n")
}

func (e *fakeEditor) SetCursor(pos types.Position) { e.cursor = &pos }

type fakeAccessor struct{ editor vault.Editor }

func (a fakeAccessor) FindOpenEditor(vault.Note) vault.Editor { return a.editor }

func zeroDelay() (rename.Option, *int) {
	calls := 0
	return rename.WithDelay(func(time.Duration) { calls++ }), &calls
}

func newCoordinator(t *testing.T, v *testutil.TestVault, settings config.Settings, editors vault.EditorAccessor, opts ...rename.Option) *rename.Coordinator {
	t.Helper()
	if editors == nil {
		editors = vault.NoEditors{}
	}
	delay, _ := zeroDelay()
	opts = append([]rename.Option{delay}, opts...)
	return rename.New(settings, vault.NewStorage(v.FS, v.Root), editors, opts...)
}

func TestCoordinator_OnNoteCreated(t *testing.T) {
	t.Run("inserts_title_after_frontmatter", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "---\nkey: v\n---\n\n")
		c := newCoordinator(t, v, config.Default(), nil)

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Equal(t, rename.OutcomeInserted, res.Outcome)
		assert.Equal(t, "Hello", res.Title)
		assert.Equal(t, "---\nkey: v\n---\nHello\n", v.NoteContent("Hello.md"))
	})

	t.Run("completes_empty_heading_placeholder", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "---\n---\n# \n")
		c := newCoordinator(t, v, config.Default(), nil)

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Equal(t, rename.OutcomeInserted, res.Outcome)
		assert.Equal(t, "---\n---\n# Hello\n", v.NoteContent("Hello.md"))
	})

	t.Run("never_overwrites_existing_content", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		original := "---\nkey: v\n---\nAlready written\nmore\n"
		v.AddNote("Hello.md", original)
		c := newCoordinator(t, v, config.Default(), nil)

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Equal(t, rename.OutcomeSkippedNonEmpty, res.Outcome)
		assert.Equal(t, original, v.NoteContent("Hello.md"))
	})

	t.Run("decodes_filename_into_title", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("What？ Why？.md", "")
		c := newCoordinator(t, v, config.Default(), nil)

		res := c.OnNoteCreated(vault.NewNote("What？ Why？.md"), nil)

		assert.Equal(t, rename.OutcomeInserted, res.Outcome)
		assert.Equal(t, "What? Why?\n", v.NoteContent("What？ Why？.md"))
	})

	t.Run("applies_heading_prefix", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "")
		settings := config.Default()
		settings.Title.HeadingPrefix = "# "
		c := newCoordinator(t, v, settings, nil)

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Equal(t, rename.OutcomeInserted, res.Outcome)
		assert.Equal(t, "# Hello\n", v.NoteContent("Hello.md"))
	})

	t.Run("placeholder_marker_wins_over_prefix", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "---\n---\n# \n")
		settings := config.Default()
		settings.Title.HeadingPrefix = "# "
		c := newCoordinator(t, v, settings, nil)

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Equal(t, rename.OutcomeInserted, res.Outcome)
		// The placeholder keeps its single marker; the prefix must not stack.
		assert.Equal(t, "---\n---\n# Hello\n", v.NoteContent("Hello.md"))
	})

	t.Run("deeper_placeholder_keeps_its_level_despite_prefix", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "### \n")
		settings := config.Default()
		settings.Title.HeadingPrefix = "# "
		c := newCoordinator(t, v, settings, nil)

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Equal(t, rename.OutcomeInserted, res.Outcome)
		assert.Equal(t, "### Hello\n", v.NoteContent("Hello.md"))
	})

	t.Run("out_of_scope_is_skipped", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("templates/Hello.md", "")
		settings := config.Default()
		settings.Scope.Folders.Paths = []string{"templates"}
		c := newCoordinator(t, v, settings, nil)

		res := c.OnNoteCreated(vault.NewNote("templates/Hello.md"), nil)

		assert.Equal(t, rename.OutcomeSkippedExcluded, res.Outcome)
		assert.Equal(t, "", v.NoteContent("templates/Hello.md"))
	})

	t.Run("snapshot_content_used_without_storage_read", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "stale on disk")
		c := newCoordinator(t, v, config.Default(), nil)

		snapshot := "---\nkey: v\n---\nlive content"
		res := c.OnNoteCreated(vault.NewNote("Hello.md"), &snapshot)

		// The live snapshot already has content, so nothing is written.
		assert.Equal(t, rename.OutcomeSkippedNonEmpty, res.Outcome)
		assert.Equal(t, "stale on disk", v.NoteContent("Hello.md"))
	})

	t.Run("read_failure_is_caught_not_thrown", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "")
		v.FS.InjectError("/vault/Hello.md", assert.AnError)
		c := newCoordinator(t, v, config.Default(), nil)

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Equal(t, rename.OutcomeFailed, res.Outcome)
	})
}

func TestCoordinator_EditorPath(t *testing.T) {
	t.Run("editor_write_verified_first_attempt", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "")
		ed := &fakeEditor{content: ""}
		c := newCoordinator(t, v, config.Default(), fakeAccessor{ed})

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Equal(t, rename.OutcomeInserted, res.Outcome)
		assert.Equal(t, 1, ed.writes)
		assert.Equal(t, "Hello\n", ed.Value())
		// Storage not touched when the editor path verified.
		assert.Equal(t, "", v.NoteContent("Hello.md"))
	})

	t.Run("retries_until_write_sticks", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "")
		ed := &fakeEditor{content: "", failures: 2}
		settings := config.Default()
		settings.Timing.RetryCount = 5
		delay, delayCalls := zeroDelay()
		c := rename.New(settings, vault.NewStorage(v.FS, v.Root), fakeAccessor{ed}, delay)

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Equal(t, rename.OutcomeInserted, res.Outcome)
		assert.Equal(t, 3, ed.writes)
		// One template-wait delay plus two inter-attempt delays.
		assert.Equal(t, 3, *delayCalls)
	})

	t.Run("retry_exhaustion_falls_back_to_storage", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "")
		ed := &fakeEditor{content: "", failures: 100}
		settings := config.Default()
		settings.Timing.RetryCount = 3
		notified := ""
		c := newCoordinator(t, v, settings, fakeAccessor{ed},
			rename.WithNotifier(func(msg string) { notified = msg }))

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Equal(t, rename.OutcomeInserted, res.Outcome)
		assert.Equal(t, 3, ed.writes)
		// The storage write is authoritative after the editor gave up.
		assert.Equal(t, "Hello\n", v.NoteContent("Hello.md"))
		assert.NotEmpty(t, notified)
	})

	t.Run("storage_fallback_replans_without_stacking_markers", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "---\n---\n# \n")
		ed := &fakeEditor{content: "---\n---\n# \n", failures: 100}
		settings := config.Default()
		settings.Timing.RetryCount = 2
		settings.Title.HeadingPrefix = "# "
		c := newCoordinator(t, v, settings, fakeAccessor{ed})

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Equal(t, rename.OutcomeInserted, res.Outcome)
		// The fallback replans from the bare title against disk content.
		assert.Equal(t, "---\n---\n# Hello\n", v.NoteContent("Hello.md"))
	})
}

func TestCoordinator_InFlight(t *testing.T) {
	t.Run("reports_true_only_while_processing", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "")
		note := vault.NewNote("Hello.md")

		var c *rename.Coordinator
		duringProcessing := false
		c = rename.New(config.Default(), vault.NewStorage(v.FS, v.Root), vault.NoEditors{},
			rename.WithDelay(func(time.Duration) {
				// The template-wait delay runs mid-event.
				duringProcessing = c.InFlight(note)
			}))

		assert.False(t, c.InFlight(note))
		res := c.OnNoteCreated(note, nil)
		assert.Equal(t, rename.OutcomeInserted, res.Outcome)
		assert.True(t, duringProcessing)
		assert.False(t, c.InFlight(note))
	})
}

func TestCoordinator_CursorPlacement(t *testing.T) {
	t.Run("cursor_at_end_when_both_toggles_on", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "---\nk: v\n---\n")
		settings := config.Default()
		settings.Title.MoveCursorToFirstLine = true
		settings.Title.PlaceCursorAtEnd = true
		c := newCoordinator(t, v, settings, nil)

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		require.NotNil(t, res.Cursor)
		assert.Equal(t, types.Position{Line: 3, Ch: len("Hello")}, *res.Cursor)
	})

	t.Run("cursor_at_start_otherwise", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "")
		settings := config.Default()
		settings.Title.MoveCursorToFirstLine = true
		settings.Title.PlaceCursorAtEnd = false
		c := newCoordinator(t, v, settings, nil)

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		require.NotNil(t, res.Cursor)
		assert.Equal(t, types.Position{Line: 0, Ch: 0}, *res.Cursor)
	})

	t.Run("no_cursor_when_toggle_off", func(t *testing.T) {
		v := testutil.NewTestVault(t)
		v.AddNote("Hello.md", "")
		settings := config.Default()
		settings.Title.MoveCursorToFirstLine = false
		c := newCoordinator(t, v, settings, nil)

		res := c.OnNoteCreated(vault.NewNote("Hello.md"), nil)

		assert.Nil(t, res.Cursor)
	})
}
