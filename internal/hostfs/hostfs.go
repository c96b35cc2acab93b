// Package hostfs abstracts the filesystem primitives the host supplies.
//
// DESIGN: The engine never touches the OS directly. Everything goes through
// the FS interface so tests can run against an in-memory fake and a future
// host can route reads/writes through its own sandbox.
package hostfs

import (
	"io/fs"
	"os"
)

// FS is the capability surface the host injects at session start.
type FS interface {
	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]fs.DirEntry, error)

	// ReadFile returns the full contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if needed.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string, perm fs.FileMode) error

	// Stat reports whether a path exists and what it is.
	Stat(path string) (fs.FileInfo, error)
}

// OS is the real-filesystem implementation used outside of tests.
type OS struct{}

func (OS) ReadDir(path string) ([]fs.DirEntry, error) { return os.ReadDir(path) }

func (OS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (OS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (OS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

func (OS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }
