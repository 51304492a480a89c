package vault

import "github.com/arthur-debert/headline/pkg/types"

// Editor is a live editing surface for a note. Writes through an editor show
// up instantly and land on the host's undo stack, which is why the rename
// coordinator prefers this path over direct storage writes.
type Editor interface {
	// Value returns the editor's current buffer content.
	Value() string

	// ReplaceRange inserts text at the given position.
	ReplaceRange(text string, pos types.Position)

	// SetCursor moves the cursor.
	SetCursor(pos types.Position)
}

// EditorAccessor locates an open editor for a note.
type EditorAccessor interface {
	// FindOpenEditor returns the editor showing the note, or nil when the
	// note is not open anywhere.
	FindOpenEditor(note Note) Editor
}

// NoEditors is an EditorAccessor for headless runs: no note ever has a live
// editor, so every write goes through storage.
type NoEditors struct{}

func (NoEditors) FindOpenEditor(Note) Editor { return nil }
