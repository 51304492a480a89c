package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestVault is an in-memory vault plus the root the Storage is anchored at.
type TestVault struct {
	FS   *MemoryFS
	Root string
	t    *testing.T
}

// NewTestVault creates an empty in-memory vault rooted at /vault.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	fs := NewMemoryFS()
	require.NoError(t, fs.MkdirAll("/vault", 0755))
	return &TestVault{FS: fs, Root: "/vault", t: t}
}

// AddNote writes a note at the given vault-relative path.
func (v *TestVault) AddNote(relPath, content string) {
	v.t.Helper()
	require.NoError(v.t, v.FS.WriteFile(filepath.Join(v.Root, relPath), []byte(content), 0644))
}

// NoteContent reads a note back, failing the test if it does not exist.
func (v *TestVault) NoteContent(relPath string) string {
	v.t.Helper()
	data, err := v.FS.ReadFile(filepath.Join(v.Root, relPath))
	require.NoError(v.t, err)
	return string(data)
}
