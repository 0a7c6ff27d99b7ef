// Package backend abstracts the storage a fragment's tile files live on,
// so the read engine can address a local directory or an object store
// through the same ranged-read interface (spec.md §3, §4.4).
package backend

import (
	"errors"
	"io"
)

// ErrNotFound is returned when a named tile file does not exist.
var ErrNotFound = errors.New("backend: file not found")

// File is a ranged, random-access handle to one tile file.
type File interface {
	io.ReaderAt
	// Size returns the file's total length in bytes.
	Size() int64
	// LocalPath returns the file's path on local disk and true, for
	// backends that support memory-mapped reads. Backends without a
	// local path (object storage) return "", false.
	LocalPath() (string, bool)
	Close() error
}

// Backend opens named tile files belonging to one fragment.
type Backend interface {
	// Open returns a handle to name (e.g. "a1.tdb", "a1_var.tdb")
	// relative to the fragment's storage root.
	Open(name string) (File, error)
}
