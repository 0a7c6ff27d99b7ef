// Package rawio provides low-level binary I/O over fragment tile files.
//
// Tile files are flat, native-byte-order arrays of fixed-width values (or,
// for variable-length attributes, byte blobs addressed by an offsets
// file) — no superblock, no variable-width address fields. This package
// is deliberately narrower than a general binary-format reader: it reads
// exactly the shapes tile I/O needs (spec.md §4.4).
package rawio

import (
	"encoding/binary"
	"io"
)

// Order is the byte order tile files are written in. TileDB-style
// fragments are written and read on the same host, so this engine uses
// the platform's native order rather than negotiating one, the one
// simplification book-keeping buys over a portable on-disk format.
var Order = binary.NativeEndian

// Reader reads fixed-width values from an io.ReaderAt at an explicit
// byte offset, independent of any other reader's position.
type Reader struct {
	r io.ReaderAt
}

// NewReader wraps r for offset-addressed reads.
func NewReader(r io.ReaderAt) *Reader {
	return &Reader{r: r}
}

// ReadAt reads exactly len(buf) bytes starting at off.
func (r *Reader) ReadAt(buf []byte, off int64) error {
	_, err := r.r.ReadAt(buf, off)
	return err
}

// ReadBytes reads and returns n bytes starting at off.
func (r *Reader) ReadBytes(off int64, n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := r.r.ReadAt(buf, off); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadUint64 reads a single uint64 in Order at off (used for
// variable-length attribute offset entries).
func (r *Reader) ReadUint64(off int64) (uint64, error) {
	var buf [8]byte
	if _, err := r.r.ReadAt(buf[:], off); err != nil {
		return 0, err
	}
	return Order.Uint64(buf[:]), nil
}

// ReadUint64s reads n consecutive uint64 values in Order starting at
// off.
func (r *Reader) ReadUint64s(off int64, n int) ([]uint64, error) {
	if n <= 0 {
		return nil, nil
	}
	buf, err := r.ReadBytes(off, n*8)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = Order.Uint64(buf[i*8 : i*8+8])
	}
	return out, nil
}
