// Package fsys defines the file-system capability used by barrel resolution.
//
// The resolver only ever needs to read file contents and probe for file
// existence, so it takes this narrow interface instead of touching the OS
// directly. Production code uses OS; tests use Mem.
package fsys

import (
	"os"
	"sort"
)

// FS is the minimal file access capability required by the resolver.
type FS interface {
	// ReadFile returns the contents of the file at path.
	ReadFile(path string) ([]byte, error)
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool
}

// OS is an FS backed by the operating system.
type OS struct{}

// ReadFile reads the file from disk.
func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Exists reports whether path names an existing regular file.
// Directories do not count: a specifier like "./utils" must not resolve
// to the directory itself, only to one of its candidate files.
func (OS) Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Mem is an in-memory FS for tests. Keys are paths as the resolver
// produces them (already joined and cleaned).
type Mem struct {
	Files map[string]string
}

// NewMem creates an in-memory FS from a path -> content map.
func NewMem(files map[string]string) *Mem {
	if files == nil {
		files = make(map[string]string)
	}
	return &Mem{Files: files}
}

// ReadFile returns the stored content, or os.ErrNotExist.
func (m *Mem) ReadFile(path string) ([]byte, error) {
	content, ok := m.Files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return []byte(content), nil
}

// Exists reports whether the path was registered.
func (m *Mem) Exists(path string) bool {
	_, ok := m.Files[path]
	return ok
}

// Paths returns all registered paths in sorted order.
func (m *Mem) Paths() []string {
	paths := make([]string, 0, len(m.Files))
	for p := range m.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
