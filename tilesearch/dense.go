// Package tilesearch maps a subarray to the tiles it overlaps (spec.md
// §4.1): a tile-domain hyper-rectangle for dense fragments, an MBR-pruned
// contiguous range in global tile order for sparse ones.
package tilesearch

import (
	"sort"

	"github.com/arrowlake/tilefrag/coord"
)

// DenseRange maps each dimension's subarray range to the inclusive range
// of tile coordinates it overlaps.
func DenseRange[T coord.Ordered](domain []coord.Domain[T], sub coord.Subarray[T]) []coord.Range[int64] {
	out := make([]coord.Range[int64], len(domain))
	for d := range domain {
		out[d] = coord.TileDomainRange(domain[d], sub[d])
	}
	return out
}

// DenseEnumerator hands out the tile coordinates within a tile-domain
// range in the array's cell order, one tile at a time, so the read
// driver can pull and classify candidates on demand. The coordinate
// tuples themselves are all generated when the enumerator is built.
type DenseEnumerator struct {
	order  coord.Order
	rng    []coord.Range[int64]
	tuples [][]int64
	next   int
}

// NewDenseEnumerator builds an enumerator over rng. If any dimension's
// range is empty, the enumerator yields no tiles.
func NewDenseEnumerator(order coord.Order, rng []coord.Range[int64]) *DenseEnumerator {
	for _, r := range rng {
		if r.Empty() {
			return &DenseEnumerator{order: order, rng: rng}
		}
	}
	return &DenseEnumerator{order: order, rng: rng, tuples: orderedTileCoords(order, rng)}
}

// Next returns the next tile's coordinates in tile-domain space, or
// ok=false once exhausted.
func (e *DenseEnumerator) Next() (tile []int64, ok bool) {
	if e.next >= len(e.tuples) {
		return nil, false
	}
	tile = e.tuples[e.next]
	e.next++
	return tile, true
}

// Remaining reports how many tiles are left to enumerate.
func (e *DenseEnumerator) Remaining() int {
	return len(e.tuples) - e.next
}

// orderedTileCoords enumerates every tile-domain coordinate within rng
// in the given cell order. Row-major and column-major are generated
// directly via an odometer that increments the fastest-varying
// dimension first; Hilbert order has no such direct generation, so the
// full set is built and sorted by Hilbert index instead.
func orderedTileCoords(order coord.Order, rng []coord.Range[int64]) [][]int64 {
	n := len(rng)
	extents := make([]int64, n)
	for d, r := range rng {
		extents[d] = r.Hi - r.Lo + 1
	}

	fast := fastDimOrder(order, n)

	total := int64(1)
	for _, e := range extents {
		total *= e
	}
	out := make([][]int64, 0, total)

	pos := make([]int64, n)
	for {
		abs := make([]int64, n)
		for d := 0; d < n; d++ {
			abs[d] = rng[d].Lo + pos[d]
		}
		out = append(out, abs)

		advanced := false
		for _, d := range fast {
			pos[d]++
			if pos[d] < extents[d] {
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
		sort.Slice(out, func(i, j int) bool {
			return hilbertOf(out[i], rng, extents) < hilbertOf(out[j], rng, extents)
		})
	}
	return out
}

func hilbertOf(abs []int64, rng []coord.Range[int64], extents []int64) int64 {
	rel := make([]int64, len(abs))
	for d := range abs {
		rel[d] = abs[d] - rng[d].Lo
	}
	return coord.HilbertIndex(rel, extents)
}

// fastDimOrder returns dimension indices fastest-varying first, for
// odometer-style enumeration.
func fastDimOrder(order coord.Order, n int) []int {
	out := make([]int, n)
	if order == coord.ColMajor {
		for i := 0; i < n; i++ {
			out[i] = i
		}
		return out
	}
	// Row-major and (for enumeration purposes, ahead of its Hilbert-sort
	// pass) Hilbert both default to last-dimension-fastest.
	for i := 0; i < n; i++ {
		out[i] = n - 1 - i
	}
	return out
}
