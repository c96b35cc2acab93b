package hostfs

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MemFS is an in-memory FS fake for tests.
//
// Paths are stored cleaned. Parent directories are created implicitly when a
// file is written, matching how tests usually seed fixtures.
type MemFS struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool

	// FailWrites makes WriteFile and MkdirAll return fs.ErrPermission,
	// for exercising best-effort bootstrap paths.
	FailWrites bool
}

// NewMemFS returns an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// Seed writes a file without going through the permission switches.
func (m *MemFS) Seed(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.files[path] = append([]byte(nil), data...)
	for dir := filepath.Dir(path); dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}
}

// SeedDir marks a directory as existing.
func (m *MemFS) SeedDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	for dir := path; dir != "/" && dir != "."; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}
}

// Exists reports whether a file was written.
func (m *MemFS) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

func (m *MemFS) ReadDir(path string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if !m.dirs[path] {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: fs.ErrNotExist}
	}

	seen := make(map[string]bool)
	var entries []fs.DirEntry
	for name := range m.files {
		if filepath.Dir(name) == path {
			base := filepath.Base(name)
			if !seen[base] {
				seen[base] = true
				entries = append(entries, memEntry{name: base, dir: false})
			}
		}
	}
	for name := range m.dirs {
		if filepath.Dir(name) == path {
			base := filepath.Base(name)
			if !seen[base] {
				seen[base] = true
				entries = append(entries, memEntry{name: base, dir: true})
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MemFS) WriteFile(path string, data []byte, _ fs.FileMode) error {
	m.mu.Lock()
	failed := m.FailWrites
	m.mu.Unlock()
	if failed {
		return &fs.PathError{Op: "write", Path: path, Err: fs.ErrPermission}
	}
	m.Seed(path, data)
	return nil
}

func (m *MemFS) MkdirAll(path string, _ fs.FileMode) error {
	m.mu.Lock()
	failed := m.FailWrites
	m.mu.Unlock()
	if failed {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrPermission}
	}
	m.SeedDir(path)
	return nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if data, ok := m.files[path]; ok {
		return memInfo{name: filepath.Base(path), size: int64(len(data)), dir: false}, nil
	}
	if m.dirs[path] {
		return memInfo{name: filepath.Base(path), dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

// memEntry implements fs.DirEntry.
type memEntry struct {
	name string
	dir  bool
}

func (e memEntry) Name() string { return e.name }
func (e memEntry) IsDir() bool  { return e.dir }
func (e memEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}
	return 0
}
func (e memEntry) Info() (fs.FileInfo, error) {
	return memInfo{name: e.name, dir: e.dir}, nil
}

// memInfo implements fs.FileInfo.
type memInfo struct {
	name string
	size int64
	dir  bool
}

func (i memInfo) Name() string { return i.name }
func (i memInfo) Size() int64  { return i.size }
func (i memInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.dir }
func (i memInfo) Sys() any           { return nil }
