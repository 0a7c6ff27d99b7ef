// Package mmapio memory-maps fragment tile files for the mmap I/O path
// (spec.md §4.4's read_tile_from_file_with_mmap variants), grounded on
// the file-backed mapping style in golang.org/x/sys/unix.
package mmapio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Region is a read-only memory mapping of a file, or a byte range of one.
type Region struct {
	data       []byte // the full page-aligned mapping
	pageOffset int    // bytes of leading padding added for page alignment
}

// Map maps the byte range [offset, offset+length) of the file at path
// read-only. The mapping is expanded to the enclosing page boundary, as
// required by mmap(2); pageOffset records how much padding was added so
// Bytes can trim it back off.
func Map(path string, offset, length int64) (*Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmapio: open %s: %w", path, err)
	}
	defer f.Close()

	pageSize := int64(os.Getpagesize())
	aligned := offset - offset%pageSize
	pad := int(offset - aligned)

	data, err := unix.Mmap(int(f.Fd()), aligned, int(length)+pad, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmapio: mmap %s at %d+%d: %w", path, offset, length, err)
	}

	return &Region{data: data, pageOffset: pad}, nil
}

// Bytes returns the mapped byte range, with page-alignment padding
// trimmed off.
func (r *Region) Bytes() []byte {
	return r.data[r.pageOffset:]
}

// Close unmaps the region.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	return err
}
