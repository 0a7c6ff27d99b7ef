package backend

import (
	"fmt"
	"os"
	"path/filepath"
)

// Local serves tile files from a directory on local disk, the layout a
// fragment normally lives in (spec.md §3). It is the only backend that
// supports the mmap I/O path, since mmap needs a real file descriptor
// on the local filesystem.
type Local struct {
	root string
}

// NewLocal returns a Backend rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

func (b *Local) Open(name string) (File, error) {
	path := filepath.Join(b.root, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("backend: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("backend: stat %s: %w", path, err)
	}
	return &localFile{f: f, path: path, size: info.Size()}, nil
}

type localFile struct {
	f    *os.File
	path string
	size int64
}

func (f *localFile) ReadAt(p []byte, off int64) (int, error) { return f.f.ReadAt(p, off) }
func (f *localFile) Size() int64                             { return f.size }
func (f *localFile) LocalPath() (string, bool)               { return f.path, true }
func (f *localFile) Close() error                            { return f.f.Close() }
