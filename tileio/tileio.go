// Package tileio fetches one tile's bytes from a backend, via either a
// read-into-buffer or a memory-mapped path, decompressing as needed
// (spec.md §4.4).
package tileio

import (
	"errors"
	"fmt"

	"github.com/arrowlake/tilefrag/backend"
	"github.com/arrowlake/tilefrag/codec"
	"github.com/arrowlake/tilefrag/internal/mmapio"
)

// Result is one fetched tile: Data is the decoded bytes, ready to
// install in a tilecache.Slot. Region is non-nil only when Data is a
// live mmap view rather than an owned copy, so the caller can keep it
// open and later Close it on eviction.
type Result struct {
	Data   []byte
	Region *mmapio.Region
}

// Open returns a handle to an attribute's tile file, or ok=false if the
// attribute has never been written — the "empty attribute" case of
// spec.md §4.4, which is not an error.
func Open(b backend.Backend, name string) (f backend.File, ok bool, err error) {
	f, err = b.Open(name)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return f, true, nil
}

// Fetch reads and, if needed, decompresses one tile.
//
// offset and compressedSize locate the tile's on-disk bytes (compressed
// or raw, per codecName); decodedSize is its size once decompressed.
// grow, if non-nil, supplies the compressed-payload scratch buffer on
// the non-mmap path (e.g. tilecache.Slot.GrowCompressed), reused and
// resized across fetches instead of allocated fresh each time.
func Fetch(f backend.File, offset, compressedSize, decodedSize int64, codecName string, useMmap bool, grow func(int) []byte) (Result, error) {
	c, err := codec.Lookup(codecName)
	if err != nil {
		return Result{}, err
	}

	if _, isNone := c.(codec.None); isNone {
		return fetchRaw(f, offset, decodedSize, useMmap)
	}
	return fetchCompressed(f, c, offset, compressedSize, decodedSize, useMmap, grow)
}

func fetchRaw(f backend.File, offset, decodedSize int64, useMmap bool) (Result, error) {
	if useMmap {
		if path, ok := f.LocalPath(); ok {
			region, err := mmapio.Map(path, offset, decodedSize)
			if err != nil {
				return Result{}, fmt.Errorf("tileio: mmap: %w", err)
			}
			return Result{Data: region.Bytes()[:decodedSize], Region: region}, nil
		}
	}

	buf := make([]byte, decodedSize)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return Result{}, fmt.Errorf("tileio: read: %w", err)
	}
	return Result{Data: buf}, nil
}

func fetchCompressed(f backend.File, c codec.Codec, offset, compressedSize, decodedSize int64, useMmap bool, grow func(int) []byte) (Result, error) {
	var raw []byte

	if useMmap {
		if path, ok := f.LocalPath(); ok {
			region, err := mmapio.Map(path, offset, compressedSize)
			if err != nil {
				return Result{}, fmt.Errorf("tileio: mmap: %w", err)
			}
			defer region.Close()
			raw = region.Bytes()[:compressedSize]
		}
	}
	if raw == nil {
		if grow != nil {
			raw = grow(int(compressedSize))
		} else {
			raw = make([]byte, compressedSize)
		}
		if _, err := f.ReadAt(raw, offset); err != nil {
			return Result{}, fmt.Errorf("tileio: read: %w", err)
		}
	}

	decoded, err := c.Decode(raw, int(decodedSize))
	if err != nil {
		return Result{}, fmt.Errorf("tileio: decompress: %w", err)
	}
	return Result{Data: decoded}, nil
}
