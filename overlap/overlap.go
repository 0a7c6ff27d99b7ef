// Package overlap classifies how a candidate tile's coverage intersects
// a query subarray (spec.md §4.2), the decision that drives which
// copier strategy the read driver picks for that tile.
package overlap

import "github.com/arrowlake/tilefrag/coord"

// Kind is one of the four ways a tile can relate to the subarray.
type Kind int

const (
	None Kind = iota
	Full
	PartialContiguous
	PartialNonContiguous
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Full:
		return "full"
	case PartialContiguous:
		return "partial-contiguous"
	case PartialNonContiguous:
		return "partial-non-contiguous"
	default:
		return "unknown"
	}
}

// Dense classifies a dense tile given, per dimension, the tile's own
// extent and the tile-relative intersection of the tile with the
// subarray (0-based, inclusive, already clipped to [0, extent-1]).
// An empty rel range (Lo > Hi) for any dimension means the tile and
// subarray do not intersect at all in that dimension.
func Dense(order coord.Order, extent []int64, rel []coord.Range[int64]) Kind {
	for _, r := range rel {
		if r.Empty() {
			return None
		}
	}

	full := true
	for d, r := range rel {
		if r.Lo != 0 || r.Hi != extent[d]-1 {
			full = false
			break
		}
	}
	if full {
		return Full
	}

	return classifyContiguity(order, extent, rel)
}

// classifyContiguity implements the memory-layout contiguity test: a
// sub-box of a row-major (or column-major) tile forms one contiguous
// run iff there is a "narrowing" dimension k such that every dimension
// faster-varying than k is fully spanned and every dimension
// slower-varying than k is pinned to a single value; k itself may be
// any sub-range. Hilbert cell order has no such simple linear-run
// property, so any non-FULL Hilbert overlap is treated conservatively
// as non-contiguous.
func classifyContiguity(order coord.Order, extent []int64, rel []coord.Range[int64]) Kind {
	fastToSlow := fastToSlowDims(order, len(extent))
	if fastToSlow == nil {
		return PartialNonContiguous
	}

	k := -1
	for i, d := range fastToSlow {
		if rel[d].Lo != 0 || rel[d].Hi != extent[d]-1 {
			k = i
			break
		}
	}
	if k == -1 {
		// Every dimension is full; the caller should have caught this
		// as Full already, but treat it the same way defensively.
		return Full
	}

	for _, d := range fastToSlow[k+1:] {
		if rel[d].Lo != rel[d].Hi {
			return PartialNonContiguous
		}
	}
	return PartialContiguous
}

// fastToSlowDims returns dimension indices ordered from fastest- to
// slowest-varying under the given cell order, or nil if the order has
// no well-defined linear dimension ordering (Hilbert).
func fastToSlowDims(order coord.Order, n int) []int {
	out := make([]int, n)
	switch order {
	case coord.ColMajor:
		for i := 0; i < n; i++ {
			out[i] = i
		}
	case coord.RowMajor:
		for i := 0; i < n; i++ {
			out[i] = n - 1 - i
		}
	default:
		return nil
	}
	return out
}

// Sparse classifies a sparse tile from its already-computed
// cell-position ranges (spec.md §4.3): empty means no qualifying cells,
// a single range means the qualifying cells form one contiguous run,
// and more than one range means non-contiguous.
func Sparse(cellPosRanges []coord.Range[int64]) Kind {
	switch len(cellPosRanges) {
	case 0:
		return None
	case 1:
		return PartialContiguous
	default:
		return PartialNonContiguous
	}
}

// SparseFull reports whether a sparse tile's full cell range [0,cellNum)
// is the sole qualifying range, meaning the tile's MBR is entirely
// contained in the subarray and no cell was excluded.
func SparseFull(cellPosRanges []coord.Range[int64], cellNum int64) bool {
	return len(cellPosRanges) == 1 && cellPosRanges[0].Lo == 0 && cellPosRanges[0].Hi == cellNum-1
}
