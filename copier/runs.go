package copier

import (
	"sort"

	"github.com/arrowlake/tilefrag/coord"
)

// DenseCellRuns enumerates the linear (cell-order) index runs a dense
// tile's tile-relative overlap box covers, merging cells whose cell-order
// indices are consecutive into single [start,end] runs. A box that
// classifies as PARTIAL_CONTIGUOUS (spec.md §4.2) always yields exactly
// one run; under row- or column-major order PARTIAL_NON_CONTIGUOUS
// yields more than one (a Hilbert box, always classified
// PARTIAL_NON_CONTIGUOUS, may still merge into a single run). This
// unifies both copy paths behind one function instead of separate
// slab-iteration logic per case.
func DenseCellRuns(order coord.Order, extent []int64, rel []coord.Range[int64]) []coord.Range[int64] {
	n := len(rel)
	span := make([]int64, n)
	for d, r := range rel {
		span[d] = r.Hi - r.Lo + 1
	}

	fast := fastDimOrder(order, n)

	total := int64(1)
	for _, s := range span {
		total *= s
	}
	indices := make([]int64, 0, total)

	pos := make([]int64, n)
	for {
		abs := make([]int64, n)
		for d := 0; d < n; d++ {
			abs[d] = rel[d].Lo + pos[d]
		}
		indices = append(indices, coord.CellIndex(order, abs, extent))

		advanced := false
		for _, d := range fast {
			pos[d]++
			if pos[d] < span[d] {
				advanced = true
				break
			}
			pos[d] = 0
		}
		if !advanced {
			break
		}
	}

	if order == coord.Hilbert {
		sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	}
	return mergeRuns(indices)
}

func mergeRuns(indices []int64) []coord.Range[int64] {
	if len(indices) == 0 {
		return nil
	}
	runs := make([]coord.Range[int64], 0, 1)
	start := indices[0]
	prev := indices[0]
	for _, idx := range indices[1:] {
		if idx == prev+1 {
			prev = idx
			continue
		}
		runs = append(runs, coord.Range[int64]{Lo: start, Hi: prev})
		start = idx
		prev = idx
	}
	runs = append(runs, coord.Range[int64]{Lo: start, Hi: prev})
	return runs
}

func fastDimOrder(order coord.Order, n int) []int {
	out := make([]int, n)
	if order == coord.ColMajor {
		for i := 0; i < n; i++ {
			out[i] = i
		}
		return out
	}
	for i := 0; i < n; i++ {
		out[i] = n - 1 - i
	}
	return out
}
