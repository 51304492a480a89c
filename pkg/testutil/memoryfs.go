package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage for tests.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	// Error injection: operations on these paths fail with the given error.
	errorPaths map[string]error
}

// NewMemoryFS creates an empty in-memory filesystem.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files:      make(map[string][]byte),
		dirs:       map[string]bool{"/": true, ".": true},
		errorPaths: make(map[string]error),
	}
}

// InjectError makes every operation on path fail with err.
func (m *MemoryFS) InjectError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[clean(path)] = err
}

func clean(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

func (m *MemoryFS) checkError(path string) error {
	if err, ok := m.errorPaths[clean(path)]; ok {
		return err
	}
	return nil
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkError(name); err != nil {
		return nil, err
	}
	name = clean(name)
	if data, ok := m.files[name]; ok {
		return &memFileInfo{name: filepath.Base(name), size: int64(len(data))}, nil
	}
	if m.dirs[name] {
		return &memFileInfo{name: filepath.Base(name), isDir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkError(name); err != nil {
		return nil, err
	}
	data, ok := m.files[clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkError(name); err != nil {
		return err
	}
	name = clean(name)
	m.files[name] = append([]byte(nil), data...)
	m.addParents(name)
	return nil
}

func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkError(path); err != nil {
		return err
	}
	path = clean(path)
	m.dirs[path] = true
	m.addParents(path + "/x")
	return nil
}

func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkError(name); err != nil {
		return nil, err
	}
	name = clean(name)
	if !m.dirs[name] {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}

	seen := map[string]bool{}
	var entries []fs.DirEntry
	add := func(path string, isDir bool) {
		rel := strings.TrimPrefix(path, name+"/")
		if path == name || strings.Contains(rel, "/") || seen[rel] {
			return
		}
		seen[rel] = true
		entries = append(entries, &memDirEntry{name: rel, isDir: isDir})
	}
	for path := range m.files {
		if strings.HasPrefix(path, name+"/") {
			add(path, false)
		}
	}
	for path := range m.dirs {
		if strings.HasPrefix(path, name+"/") {
			add(path, true)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *MemoryFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkError(oldpath); err != nil {
		return err
	}
	if err := m.checkError(newpath); err != nil {
		return err
	}
	oldpath, newpath = clean(oldpath), clean(newpath)
	data, ok := m.files[oldpath]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	delete(m.files, oldpath)
	m.files[newpath] = data
	m.addParents(newpath)
	return nil
}

func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkError(name); err != nil {
		return err
	}
	name = clean(name)
	if _, ok := m.files[name]; ok {
		delete(m.files, name)
		return nil
	}
	if m.dirs[name] {
		delete(m.dirs, name)
		return nil
	}
	return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
}

// addParents registers every ancestor directory of path. Callers hold the lock.
func (m *MemoryFS) addParents(path string) {
	for {
		path = clean(filepath.Dir(path))
		if path == "/" || path == "." || m.dirs[path] {
			return
		}
		m.dirs[path] = true
	}
}

// memFileInfo implements fs.FileInfo
type memFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (i *memFileInfo) Name() string       { return i.name }
func (i *memFileInfo) Size() int64        { return i.size }
func (i *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (i *memFileInfo) ModTime() time.Time { return time.Time{} }
func (i *memFileInfo) IsDir() bool        { return i.isDir }
func (i *memFileInfo) Sys() interface{}   { return nil }

// memDirEntry implements fs.DirEntry
type memDirEntry struct {
	name  string
	isDir bool
}

func (e *memDirEntry) Name() string               { return e.name }
func (e *memDirEntry) IsDir() bool                { return e.isDir }
func (e *memDirEntry) Type() fs.FileMode          { return 0 }
func (e *memDirEntry) Info() (fs.FileInfo, error) { return &memFileInfo{name: e.name, isDir: e.isDir}, nil }
