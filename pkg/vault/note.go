// Package vault defines headline's view of the host note store: the Note
// reference type plus the Storage, Editor and Metadata collaborators the
// engine talks to. Storage and Metadata have filesystem-backed
// implementations; Editor is an interface the embedding host (or a test
// fake) provides — a plain CLI run has no live editors and the storage path
// is authoritative.
package vault

import (
	"path/filepath"
	"strings"
)

// Note is a reference to a single markdown note, identified by its path
// relative to the vault root.
type Note struct {
	Path string
}

// NewNote builds a Note from a vault-relative path.
func NewNote(path string) Note {
	return Note{Path: filepath.ToSlash(path)}
}

// Folder returns the note's containing folder, "" for the vault root.
func (n Note) Folder() string {
	dir := filepath.ToSlash(filepath.Dir(n.Path))
	if dir == "." {
		return ""
	}
	return dir
}

// Name returns the file name including extension.
func (n Note) Name() string {
	return filepath.Base(n.Path)
}

// Stem returns the file name without its extension — the part the rename
// engine derives from the title.
func (n Note) Stem() string {
	name := n.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Ext returns the file extension including the dot.
func (n Note) Ext() string {
	return filepath.Ext(n.Path)
}

// WithStem returns the note renamed to the given stem, same folder and
// extension.
func (n Note) WithStem(stem string) Note {
	dir := n.Folder()
	name := stem + n.Ext()
	if dir == "" {
		return Note{Path: name}
	}
	return Note{Path: dir + "/" + name}
}

// IsMarkdown reports whether the note has a markdown extension.
func (n Note) IsMarkdown() bool {
	return strings.EqualFold(n.Ext(), ".md")
}
