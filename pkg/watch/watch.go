// Package watch turns filesystem activity under a vault root into
// note-created events for the rename coordinator.
//
// fsnotify does not watch recursively, so directories are registered as they
// are discovered: existing ones on startup, new ones when their create event
// arrives. Editors commonly fire a create immediately followed by writes for
// the same path; a per-path debounce window collapses those bursts into a
// single event.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/headline/pkg/errors"
	"github.com/arthur-debert/headline/pkg/logging"
	"github.com/arthur-debert/headline/pkg/vault"
)

// Event is a note creation observed under the vault root.
type Event struct {
	Note vault.Note
}

// Watcher emits note-created events for a vault.
type Watcher struct {
	root     string
	fsw      *fsnotify.Watcher
	events   chan Event
	debounce *Debouncer
	logger   zerolog.Logger
}

// New creates a Watcher for the vault root. window is the per-path debounce
// duration; the coordinator's template-wait value is a good choice.
func New(root string, window time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create filesystem watcher")
	}

	return &Watcher{
		root:     root,
		fsw:      fsw,
		events:   make(chan Event, 16),
		debounce: NewDebouncer(window),
		logger:   logging.GetLogger("watch"),
	}, nil
}

// Events returns the note-created channel. It is closed when Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run watches until the context is canceled. It registers every existing
// directory first, then follows create events for new ones.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)
	defer func() { _ = w.fsw.Close() }()

	if err := w.addDirs(w.root); err != nil {
		return err
	}
	w.logger.Info().Str("root", w.root).Msg("watching vault")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) {
		return
	}

	if isDir(ev.Name) {
		if err := w.addDirs(ev.Name); err != nil {
			w.logger.Warn().Err(err).Str("dir", ev.Name).Msg("failed to watch new directory")
		}
		return
	}

	if !strings.EqualFold(filepath.Ext(ev.Name), ".md") {
		return
	}
	if !w.debounce.Allow(ev.Name, time.Now()) {
		w.logger.Trace().Str("path", ev.Name).Msg("debounced duplicate create")
		return
	}

	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", ev.Name).Msg("event outside vault root")
		return
	}

	w.logger.Debug().Str("note", rel).Msg("note created")
	w.events <- Event{Note: vault.NewNote(rel)}
}

// addDirs registers dir and all directories below it.
func (w *Watcher) addDirs(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
