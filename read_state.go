// Package tilefrag implements the read state machine of a fragment read
// engine: given a subarray, it locates, fetches, and copies the
// qualifying cells of one fragment into caller-supplied buffers,
// resuming across calls when a buffer fills up.
package tilefrag

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-kit/log/level"

	"github.com/arrowlake/tilefrag/backend"
	"github.com/arrowlake/tilefrag/bookkeeping"
	"github.com/arrowlake/tilefrag/coord"
	"github.com/arrowlake/tilefrag/overlap"
	"github.com/arrowlake/tilefrag/schema"
	"github.com/arrowlake/tilefrag/tilecache"
	"github.com/arrowlake/tilefrag/tileio"
	"github.com/arrowlake/tilefrag/tilesearch"

	"github.com/arrowlake/tilefrag/internal/sparsepos"
)

// AttrBuffer is one attribute's output: Data receives fixed-size cell
// bytes, or the rewritten offsets stream for a variable-size attribute;
// VarData receives the values stream and is nil for fixed attributes.
type AttrBuffer struct {
	Data    []byte
	VarData []byte
}

// AttrWritten reports what Read actually did for one attribute.
type AttrWritten struct {
	Bytes    int
	VarBytes int
	Overflow bool
}

type overlappingTile[T coord.Ordered] struct {
	pos        int64
	tileCoords []int64 // dense only
	cellNum    int64
	ov         overlap.Kind

	denseRel  []coord.Range[int64]
	denseRuns []coord.Range[int64]

	mbr           coord.Subarray[T]
	cellPosRanges []coord.Range[int64]
	coords        [][]T
}

type cursorState struct {
	tileIdx     int
	rangeIdx    int
	resumeCells int64
	overflow    bool
}

// ReadState is bound to one (fragment, subarray) pair for its whole
// lifetime; construct a new one per query (spec.md §3's Lifecycle).
type ReadState[T coord.Ordered] struct {
	frag     *Fragment[T]
	subarray coord.Subarray[T]
	opts     options

	denseEnum *tilesearch.DenseEnumerator

	sparseHasRange bool
	sparseLo       int64
	sparseHi       int64
	sparseNext     int64

	tiles []*overlappingTile[T]

	cache   *tilecache.Cache
	cursors []cursorState

	fixedFiles      map[int]backend.File
	fixedEmpty      map[int]bool
	valuesFiles     map[int]backend.File
	valuesEmpty     map[int]bool
	coordsFile      backend.File
	coordsScratch   []byte
	varOffsetScratch map[int][]byte
}

// New constructs a ReadState for sub over frag.
func New[T coord.Ordered](frag *Fragment[T], sub coord.Subarray[T], opt ...Option) *ReadState[T] {
	o := defaultOptions()
	for _, f := range opt {
		f(&o)
	}

	rs := &ReadState[T]{
		frag:             frag,
		subarray:         sub,
		opts:             o,
		cache:            tilecache.New(len(frag.Schema.Attributes)),
		cursors:          make([]cursorState, len(frag.Schema.Attributes)),
		fixedFiles:       make(map[int]backend.File),
		fixedEmpty:       make(map[int]bool),
		valuesFiles:      make(map[int]backend.File),
		valuesEmpty:      make(map[int]bool),
		varOffsetScratch: make(map[int][]byte),
	}

	if frag.Schema.Geometry == schema.Dense {
		rng := tilesearch.DenseRange(frag.Schema.Domain, sub)
		rs.denseEnum = tilesearch.NewDenseEnumerator(frag.Schema.CellOrder, rng)
	} else {
		lo, hi, ok := sparseRange(frag.Schema.CellOrder, frag.BookKeeping.MBRs, sub)
		rs.sparseHasRange = ok
		if ok {
			rs.sparseLo, rs.sparseHi = lo, hi
			rs.sparseNext = lo
		}
	}

	return rs
}

func sparseRange[T coord.Ordered](order coord.Order, mbrs []coord.Subarray[T], sub coord.Subarray[T]) (int64, int64, bool) {
	if order == coord.Hilbert {
		// A Hilbert-value pruning pass needs per-tile Hilbert keys that
		// book-keeping does not carry in this package; fall back to a
		// full scan of the MBR list. Still correct, just O(n) instead
		// of a binary search.
		lo, hi := int64(-1), int64(-1)
		for i, mbr := range mbrs {
			if mbrIntersects(mbr, sub) {
				if lo == -1 {
					lo = int64(i)
				}
				hi = int64(i)
			}
		}
		return lo, hi, lo != -1
	}
	rng, ok := tilesearch.SparseRangeRowCol(order, mbrs, sub)
	return rng.Lo, rng.Hi, ok
}

func mbrIntersects[T coord.Ordered](mbr coord.Subarray[T], sub coord.Subarray[T]) bool {
	for d := range mbr {
		if _, ok := mbr[d].Intersect(sub[d]); !ok {
			return false
		}
	}
	return true
}

func mbrFullyContained[T coord.Ordered](mbr, sub coord.Subarray[T]) bool {
	for d := range mbr {
		if !sub[d].Contains(mbr[d]) {
			return false
		}
	}
	return true
}

// Read drives every attribute's cursor until each buffer fills or all
// overlapping tiles are consumed (spec.md §4.6).
func (rs *ReadState[T]) Read(buffers []AttrBuffer) ([]AttrWritten, error) {
	if len(buffers) != len(rs.frag.Schema.Attributes) {
		return nil, newError(Invariant, "read", fmt.Errorf("got %d buffers, want %d attributes", len(buffers), len(rs.frag.Schema.Attributes)))
	}

	out := make([]AttrWritten, len(buffers))
	for a := range rs.cursors {
		rs.cursors[a].overflow = false
	}

	for a, attr := range rs.frag.Schema.Attributes {
		w, err := rs.driveAttribute(a, attr, buffers[a])
		if err != nil {
			return nil, err
		}
		out[a] = w
	}

	if err := rs.housekeep(); err != nil {
		return nil, err
	}
	return out, nil
}

func (rs *ReadState[T]) driveAttribute(a int, attr schema.Attribute, buf AttrBuffer) (AttrWritten, error) {
	var written AttrWritten
	cur := &rs.cursors[a]

	for {
		tile, ok, err := rs.tileFor(cur)
		if err != nil {
			return written, err
		}
		if !ok {
			break
		}

		if tile.ov == overlap.None {
			cur.tileIdx++
			cur.rangeIdx, cur.resumeCells = 0, 0
			continue
		}

		if len(buf.Data)-written.Bytes <= 0 {
			cur.overflow = true
			break
		}

		var done bool
		if rs.frag.Schema.Geometry == schema.Dense {
			done, err = rs.copyDenseAttribute(a, attr, tile, cur, &buf, &written)
		} else {
			done, err = rs.copySparseAttribute(a, attr, tile, cur, &buf, &written)
		}
		if err != nil {
			return written, err
		}
		if !done {
			cur.overflow = true
			break
		}

		cur.tileIdx++
		cur.rangeIdx, cur.resumeCells = 0, 0
	}

	written.Overflow = cur.overflow
	rs.logDebug("attribute drive complete", "attr", attr.Name, "bytes", written.Bytes, "overflow", written.Overflow)
	return written, nil
}

// tileFor returns the tile the cursor currently points at, pulling the
// next candidate from tile search and classifying it if the cursor has
// run off the end of the shared append-only tile list.
func (rs *ReadState[T]) tileFor(cur *cursorState) (*overlappingTile[T], bool, error) {
	if cur.tileIdx < len(rs.tiles) {
		return rs.tiles[cur.tileIdx], true, nil
	}
	return rs.nextCandidate()
}

func (rs *ReadState[T]) nextCandidate() (*overlappingTile[T], bool, error) {
	if rs.frag.Schema.Geometry == schema.Dense {
		t := rs.nextDenseCandidate()
		return t, t != nil, nil
	}
	return rs.nextSparseCandidate()
}

func (rs *ReadState[T]) nextDenseCandidate() *overlappingTile[T] {
	tc, ok := rs.denseEnum.Next()
	if !ok {
		return nil
	}

	ext := rs.frag.Schema.TileExtents()
	rel := make([]coord.Range[int64], len(tc))
	for d, dom := range rs.frag.Schema.Domain {
		tileLo := int64(dom.Lo) + tc[d]*int64(dom.Extent)
		tileHi := tileLo + int64(dom.Extent) - 1
		lo := maxI64(tileLo, int64(rs.subarray[d].Lo))
		hi := minI64(tileHi, int64(rs.subarray[d].Hi))
		rel[d] = coord.Range[int64]{Lo: lo - tileLo, Hi: hi - tileLo}
	}

	ov := overlap.Dense(rs.frag.Schema.CellOrder, ext, rel)
	pos := coord.CellIndex(rs.frag.Schema.CellOrder, tc, rs.frag.Schema.TileDomainExtents())

	t := &overlappingTile[T]{
		pos:        pos,
		tileCoords: tc,
		cellNum:    rs.frag.Schema.TileCapacity(),
		ov:         ov,
		denseRel:   rel,
	}
	rs.tiles = append(rs.tiles, t)
	return t
}

func (rs *ReadState[T]) nextSparseCandidate() (*overlappingTile[T], bool, error) {
	if !rs.sparseHasRange || rs.sparseNext > rs.sparseHi {
		return nil, false, nil
	}
	idx := rs.sparseNext
	rs.sparseNext++

	mbr := rs.frag.BookKeeping.MBR(int(idx))
	info := rs.frag.BookKeeping.CoordsTiles[idx]

	var cellPosRanges []coord.Range[int64]
	var coords [][]T
	var ov overlap.Kind

	switch {
	case mbrFullyContained(mbr, rs.subarray):
		cellPosRanges = []coord.Range[int64]{{Lo: 0, Hi: info.CellCount - 1}}
		ov = overlap.PartialContiguous
	case !mbrIntersects(mbr, rs.subarray):
		ov = overlap.None
	default:
		var err error
		coords, err = rs.fetchCoords(idx, info)
		if err != nil {
			return nil, false, err
		}
		if rs.subarray.Unary() {
			point := make([]T, len(rs.subarray))
			for d, r := range rs.subarray {
				point[d] = r.Lo
			}
			if pos, found := sparsepos.UnaryLookup(rs.frag.Schema.CellOrder, point, coords); found {
				cellPosRanges = []coord.Range[int64]{{Lo: pos, Hi: pos}}
				ov = overlap.PartialContiguous
			} else {
				ov = overlap.None
			}
			break
		}
		cellPosRanges = sparsepos.Ranges(rs.subarray, coords)
		ov = overlap.Sparse(cellPosRanges)
		if overlap.SparseFull(cellPosRanges, info.CellCount) {
			ov = overlap.Full
		}
	}

	t := &overlappingTile[T]{
		pos:           idx,
		cellNum:       info.CellCount,
		ov:            ov,
		mbr:           mbr,
		cellPosRanges: cellPosRanges,
		coords:        coords,
	}
	rs.tiles = append(rs.tiles, t)
	return t, true, nil
}

// growCoordsScratch grows the coordinates-file compressed scratch buffer
// in place, mirroring tilecache.Slot.GrowCompressed for the one file this
// engine reads outside the per-attribute cache.
func (rs *ReadState[T]) growCoordsScratch(n int) []byte {
	if cap(rs.coordsScratch) < n {
		rs.coordsScratch = make([]byte, n)
	} else {
		rs.coordsScratch = rs.coordsScratch[:n]
	}
	return rs.coordsScratch
}

// fetchCoords brings in a sparse tile's coordinates tile and decodes it
// into per-cell coordinate tuples, computed once per tile regardless of
// how many attributes need it (spec.md §3 invariant 3).
func (rs *ReadState[T]) fetchCoords(tilePos int64, info bookkeeping.TileInfo) ([][]T, error) {
	if rs.coordsFile == nil {
		f, ok, err := tileio.Open(rs.frag.Backend, "__coords.tdb")
		if err != nil {
			return nil, newError(IOOpen, "coords", err)
		}
		if !ok {
			return nil, newError(Invariant, "coords", errors.New("sparse fragment has no coordinates file"))
		}
		rs.coordsFile = f
	}

	rank := rs.frag.Schema.Rank()
	elemSize := int(unsafe.Sizeof(*new(T)))
	decodedSize := info.CellCount * int64(rank*elemSize)

	res, err := tileio.Fetch(rs.coordsFile, info.Offset, info.CompressedSize, decodedSize, rs.frag.Schema.Codec, rs.opts.useMmap, rs.growCoordsScratch)
	if err != nil {
		return nil, newError(IORead, "coords", err)
	}

	coords := make([][]T, info.CellCount)
	for i := int64(0); i < info.CellCount; i++ {
		pt := make([]T, rank)
		for d := 0; d < rank; d++ {
			off := (i*int64(rank) + int64(d)) * int64(elemSize)
			pt[d] = decodeCoordValue[T](res.Data[off : off+int64(elemSize)])
		}
		coords[i] = pt
	}
	return coords, nil
}

// decodeCoordValue reinterprets a host-native-byte-order value as T by
// raw byte copy, valid because T's constraint fixes it to one of
// int32/int64/float32/float64 at each instantiation (spec.md §6: "byte
// order is host-native").
func decodeCoordValue[T coord.Ordered](b []byte) T {
	var v T
	n := int(unsafe.Sizeof(v))
	dst := (*[8]byte)(unsafe.Pointer(&v))
	copy(dst[:n], b[:n])
	return v
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func (rs *ReadState[T]) logDebug(msg string, kv ...interface{}) {
	level.Debug(rs.opts.logger).Log(append([]interface{}{"msg", msg}, kv...)...)
}
