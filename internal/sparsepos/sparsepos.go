// Package sparsepos computes the intra-tile cell-position ranges a
// sparse tile's coordinates qualify for under a subarray (spec.md §4.3).
package sparsepos

import (
	"sort"

	"github.com/arrowlake/tilefrag/coord"
)

// Ranges scans a sparse tile's cell coordinates, in tile-local cell
// order, and returns the sorted, merged [start,end] intervals whose
// cells lie inside sub. Coords[i] is the i-th cell's coordinate tuple.
func Ranges[T coord.Ordered](sub coord.Subarray[T], coords [][]T) []coord.Range[int64] {
	var out []coord.Range[int64]
	var runStart int64 = -1

	for i, pt := range coords {
		if inSubarray(sub, pt) {
			if runStart == -1 {
				runStart = int64(i)
			}
			continue
		}
		if runStart != -1 {
			out = append(out, coord.Range[int64]{Lo: runStart, Hi: int64(i - 1)})
			runStart = -1
		}
	}
	if runStart != -1 {
		out = append(out, coord.Range[int64]{Lo: runStart, Hi: int64(len(coords) - 1)})
	}
	return out
}

func inSubarray[T coord.Ordered](sub coord.Subarray[T], pt []T) bool {
	for d, r := range sub {
		if !coord.LE(r.Lo, pt[d]) || !coord.GE(r.Hi, pt[d]) {
			return false
		}
	}
	return true
}

// UnaryLookup binary-searches a tile's cell coordinates, assumed sorted
// in cell order, for the single point a unary subarray names. It
// returns the matching cell position, or ok=false if absent. This is
// the specialized fast path spec.md §4.3 calls for instead of a full
// scan when every dimension of the subarray collapses to one point.
func UnaryLookup[T coord.Ordered](order coord.Order, point []T, coords [][]T) (pos int64, ok bool) {
	i := sort.Search(len(coords), func(i int) bool {
		return cellOrderCompare(order, coords[i], point) >= 0
	})
	if i >= len(coords) || cellOrderCompare(order, coords[i], point) != 0 {
		return 0, false
	}
	return int64(i), true
}

// cellOrderCompare orders two coordinate tuples the way the array's
// cell order would lay them out on disk: both row-major and column-major
// compare the slowest-varying dimension first (the first dimension for
// row-major, the last for column-major), Hilbert by curve distance.
func cellOrderCompare[T coord.Ordered](order coord.Order, a, b []T) int {
	if order == coord.Hilbert {
		extent := make([]int64, len(a))
		ai := make([]int64, len(a))
		bi := make([]int64, len(a))
		for d := range a {
			extent[d] = 1 << 32 // coarse shared scale; callers needing exact
			// tile-relative Hilbert comparison should pre-convert to
			// tile-local integer coordinates before calling UnaryLookup.
			ai[d] = int64(a[d])
			bi[d] = int64(b[d])
		}
		ha := coord.HilbertIndex(ai, extent)
		hb := coord.HilbertIndex(bi, extent)
		switch {
		case ha < hb:
			return -1
		case ha > hb:
			return 1
		default:
			return 0
		}
	}

	dims := make([]int, len(a))
	if order == coord.ColMajor {
		for i := range dims {
			dims[i] = len(a) - 1 - i
		}
	} else {
		for i := range dims {
			dims[i] = i
		}
	}
	for _, d := range dims {
		if c := coord.Compare(a[d], b[d]); c != 0 {
			return c
		}
	}
	return 0
}
