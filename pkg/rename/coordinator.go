// Package rename orchestrates title processing for newly created notes.
//
// For each note-created event the Coordinator runs: scope check → content
// inspection → title computation → write with verification. Writes prefer a
// live editor when one is open (instant, undo-visible) and verify by reading
// the buffer back; a bounded retry loop guards against racing the host's own
// template insertion, and exhausting it falls back to the authoritative
// storage write. A failed event is logged and reported, never thrown into
// the event pipeline.
package rename

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/headline/pkg/alias"
	"github.com/arthur-debert/headline/pkg/codec"
	"github.com/arthur-debert/headline/pkg/config"
	"github.com/arthur-debert/headline/pkg/logging"
	"github.com/arthur-debert/headline/pkg/sanitize"
	"github.com/arthur-debert/headline/pkg/scope"
	"github.com/arthur-debert/headline/pkg/types"
	"github.com/arthur-debert/headline/pkg/vault"
)

// Result is what one note-created event produced.
type Result struct {
	Outcome Outcome
	// Title is the text written into the note (without heading marker).
	Title string
	// Cursor is where the caller should place the cursor after insertion,
	// deferred to after the host's own post-insert reset. Nil when nothing
	// was inserted.
	Cursor *types.Position
}

// Coordinator drives title insertion and filename synchronization.
type Coordinator struct {
	settings config.Settings
	storage  vault.Storage
	editors  vault.EditorAccessor
	scope    *scope.Evaluator
	codec    *codec.Codec
	sanitize *sanitize.Sanitizer
	aliases  *alias.Synchronizer
	logger   zerolog.Logger

	// delay is injected so tests can run the retry loop with a zero-delay
	// clock and assert exact attempt counts.
	delay func(time.Duration)

	// notify surfaces suppressible user notifications (merged/superseded
	// content races). Never a blocking call.
	notify func(msg string)

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDelay replaces the inter-attempt sleep, for tests.
func WithDelay(fn func(time.Duration)) Option {
	return func(c *Coordinator) { c.delay = fn }
}

// WithNotifier sets the user-notification sink.
func WithNotifier(fn func(string)) Option {
	return func(c *Coordinator) { c.notify = fn }
}

// New wires a Coordinator from a settings snapshot and the vault
// collaborators.
func New(settings config.Settings, storage vault.Storage, editors vault.EditorAccessor, opts ...Option) *Coordinator {
	c := &Coordinator{
		settings: settings,
		storage:  storage,
		editors:  editors,
		scope:    scope.New(settings.Scope, vault.NewMetadata(storage)),
		codec:    codec.New(settings.Replacements),
		sanitize: sanitize.New(settings.Strip, 0),
		aliases:  alias.New(settings.Alias, storage),
		logger:   logging.GetLogger("rename.coordinator"),
		delay:    time.Sleep,
		notify:   func(string) {},
		inflight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnNoteCreated handles one creation event. snapshot optionally carries
// content captured at event time (a live buffer not yet flushed); nil means
// read through storage after the template grace period.
func (c *Coordinator) OnNoteCreated(note vault.Note, snapshot *string) Result {
	logger := c.logger.With().Str("note", note.Path).Logger()
	defer logging.LogOperationStart(logger, "note-created")()

	c.track(note)
	defer c.untrack(note)

	// SCOPE_CHECKED
	if !c.scope.IsInScope(note, snapshot) {
		return Result{Outcome: OutcomeSkippedExcluded}
	}

	// CONTENT_INSPECTED: give a template a moment to land first when we
	// have no snapshot. A timeout here is not an error; we proceed with
	// whatever content exists.
	var content string
	if snapshot != nil {
		content = *snapshot
	} else {
		c.delay(c.settings.Timing.TemplateWait())
		read, err := c.storage.Read(note)
		if err != nil {
			logger.Error().Err(err).Msg("failed to read note content")
			return Result{Outcome: OutcomeFailed}
		}
		content = read
	}

	// TITLE_COMPUTED: the human-readable title comes from the filename.
	title := c.codec.Decode(note.Stem())

	plan, outcome := planInsertion(content, title, c.settings.Title.HeadingPrefix)
	if outcome != OutcomeInserted {
		logger.Debug().Stringer("outcome", outcome).Msg("nothing to insert")
		return Result{Outcome: outcome}
	}

	// WRITE_ATTEMPTED → VERIFIED
	if err := c.write(note, plan, logger); err != nil {
		logger.Error().Err(err).Msg("title write failed")
		return Result{Outcome: OutcomeFailed}
	}

	if err := c.aliases.Sync(note, note.Stem(), title); err != nil {
		// Alias mirroring is best-effort; the title itself landed.
		logger.Warn().Err(err).Msg("alias sync failed")
	}

	return Result{
		Outcome: OutcomeInserted,
		Title:   title,
		Cursor:  c.cursorFor(plan),
	}
}

// write prefers the live-editor path and falls back to storage. The editor
// write is verified by re-reading the buffer; mismatches (the host flushing
// a template insert under us) are retried a bounded number of times, then
// the storage path takes over as the authority.
func (c *Coordinator) write(note vault.Note, plan insertion, logger zerolog.Logger) error {
	if ed := c.editors.FindOpenEditor(note); ed != nil {
		if c.writeViaEditor(ed, plan, logger) {
			return nil
		}
		logger.Debug().Msg("editor write not verified, falling back to storage")
		c.notify("headline: note changed while inserting title; result may be merged")
	}

	return c.storage.Write(note, func(current string) string {
		replanned, outcome := planInsertion(current, plan.title, plan.prefix)
		if outcome != OutcomeInserted {
			// Content appeared since planning; never overwrite it.
			return current
		}
		return replanned.content
	})
}

// writeViaEditor attempts the insert through a live editor, verifying after
// each attempt that the target line now carries the title. Returns false
// when the retry budget is exhausted.
func (c *Coordinator) writeViaEditor(ed vault.Editor, plan insertion, logger zerolog.Logger) bool {
	attempts := c.settings.Timing.RetryCount
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		ed.ReplaceRange(plan.editorText, types.Position{Line: plan.line, Ch: plan.editorCh})

		if lineAt(ed.Value(), plan.line) == strings.TrimSpace(plan.titleLine) {
			logger.Debug().Int("attempt", attempt).Msg("editor write verified")
			return true
		}

		logger.Debug().Int("attempt", attempt).Msg("editor write not yet visible, retrying")
		if attempt < attempts {
			c.delay(c.settings.Timing.RetryDelay())
		}
	}
	return false
}

// cursorFor computes the post-insert cursor position per the cursor
// settings: end of the title line when both toggles are on, else its start.
func (c *Coordinator) cursorFor(plan insertion) *types.Position {
	if !c.settings.Title.MoveCursorToFirstLine {
		return nil
	}
	pos := types.Position{Line: plan.line, Ch: 0}
	if c.settings.Title.PlaceCursorAtEnd {
		pos.Ch = len([]rune(plan.titleLine))
	}
	return &pos
}

// lineAt returns the trimmed text of the zero-based line index.
func lineAt(content string, line int) string {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line])
}

func (c *Coordinator) track(note vault.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight[note.Path] = struct{}{}
}

func (c *Coordinator) untrack(note vault.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, note.Path)
}

// InFlight reports whether an event for the note is currently processing.
func (c *Coordinator) InFlight(note vault.Note) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[note.Path]
	return ok
}
