package tilesearch

import (
	"sort"

	"github.com/arrowlake/tilefrag/coord"
)

// SparseRangeRowCol prunes the global tile order to the inclusive range
// of tiles whose MBR can possibly intersect sub, for row-major or
// column-major cell order. mbrs must be sorted ascending by the major
// dimension's bounds, which book-keeping guarantees for a fragment
// written in cell order. ok is false when no tile can qualify.
func SparseRangeRowCol[T coord.Ordered](order coord.Order, mbrs []coord.Subarray[T], sub coord.Subarray[T]) (rng coord.Range[int64], ok bool) {
	if len(mbrs) == 0 {
		return coord.Range[int64]{Lo: -1, Hi: -1}, false
	}
	major := majorDim(order, len(sub))

	lo := sort.Search(len(mbrs), func(i int) bool {
		return coord.GE(mbrs[i][major].Hi, sub[major].Lo)
	})
	hi := sort.Search(len(mbrs), func(i int) bool {
		return coord.Compare(mbrs[i][major].Lo, sub[major].Hi) > 0
	}) - 1

	if lo > hi || lo >= len(mbrs) || hi < 0 {
		return coord.Range[int64]{Lo: -1, Hi: -1}, false
	}
	return coord.Range[int64]{Lo: int64(lo), Hi: int64(hi)}, true
}

// majorDim returns the dimension sparse book-keeping primarily sorts
// tiles by: the first dimension for row-major, the last for
// column-major.
func majorDim(order coord.Order, n int) int {
	if order == coord.ColMajor {
		return n - 1
	}
	return 0
}
