package copier

import "github.com/arrowlake/tilefrag/backend"

// DirectEligible reports whether a FULL-overlap fixed-size tile
// qualifies for the direct file-to-output-buffer copy that bypasses the
// tile cache entirely (spec.md §4.5, §9 Open Question 1): the tile must
// fit whole in the remaining buffer space and must not already be
// partway consumed.
func DirectEligible(freeBufferSpace, tileByteSize, resumeByteOffset int64) bool {
	return resumeByteOffset == 0 && freeBufferSpace >= tileByteSize
}

// Direct reads an uncompressed tile straight from its backend file into
// dst, skipping the tile cache. Only valid for the "none" codec: a
// compressed tile always needs the cache's scratch buffer to decode
// into.
func Direct(f backend.File, offset int64, dst []byte) (int, error) {
	n, err := f.ReadAt(dst, offset)
	if err != nil {
		return n, err
	}
	return n, nil
}
