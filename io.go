package tilefrag

import (
	"github.com/arrowlake/tilefrag/backend"
	"github.com/arrowlake/tilefrag/internal/mmapio"
	"github.com/arrowlake/tilefrag/internal/rawio"
	"github.com/arrowlake/tilefrag/tileio"
)

func (rs *ReadState[T]) getFixedFile(a int) (backend.File, bool, error) {
	if rs.fixedEmpty[a] {
		return nil, true, nil
	}
	if f, ok := rs.fixedFiles[a]; ok {
		return f, false, nil
	}

	name := rs.frag.Schema.Attributes[a].Name + ".tdb"
	f, ok, err := tileio.Open(rs.frag.Backend, name)
	if err != nil {
		return nil, false, newError(IOOpen, name, err)
	}
	if !ok {
		rs.fixedEmpty[a] = true
		return nil, true, nil
	}
	rs.fixedFiles[a] = f
	return f, false, nil
}

func (rs *ReadState[T]) getValuesFile(a int) (backend.File, bool, error) {
	if rs.valuesEmpty[a] {
		return nil, true, nil
	}
	if f, ok := rs.valuesFiles[a]; ok {
		return f, false, nil
	}

	name := rs.frag.Schema.Attributes[a].Name + "_var.tdb"
	f, ok, err := tileio.Open(rs.frag.Backend, name)
	if err != nil {
		return nil, false, newError(IOOpen, name, err)
	}
	if !ok {
		rs.valuesEmpty[a] = true
		return nil, true, nil
	}
	rs.valuesFiles[a] = f
	return f, false, nil
}

// ensureFixedTileCached brings attribute a's tile at pos into its cache
// slot if it isn't already positioned there.
func (rs *ReadState[T]) ensureFixedTileCached(a int, pos int64, cellSize int) error {
	slot := rs.cache.Slot(a)
	if slot.Positioned(pos) {
		return nil
	}
	if err := slot.Evict(); err != nil {
		return newError(IOMmap, rs.frag.Schema.Attributes[a].Name, err)
	}

	f, empty, err := rs.getFixedFile(a)
	if err != nil {
		return err
	}
	if empty {
		slot.SetBuffer(pos, nil, nil)
		return nil
	}

	info := rs.frag.BookKeeping.Tile(a, int(pos))
	decodedSize := info.DecodedSize(cellSize)

	res, err := tileio.Fetch(f, info.Offset, info.CompressedSize, decodedSize, rs.frag.Schema.Codec, rs.opts.useMmap, slot.GrowCompressed)
	if err != nil {
		return newError(IORead, rs.frag.Schema.Attributes[a].Name, err)
	}
	if res.Region != nil {
		slot.SetMapped(pos, res.Data, nil, res.Region)
	} else {
		slot.SetBuffer(pos, res.Data, nil)
	}
	return nil
}

// ensureVarTileCached brings a variable attribute's offsets and values
// tiles into its cache slot together.
func (rs *ReadState[T]) ensureVarTileCached(a int, pos int64) error {
	slot := rs.cache.Slot(a)
	if slot.Positioned(pos) {
		return nil
	}
	if err := slot.Evict(); err != nil {
		return newError(IOMmap, rs.frag.Schema.Attributes[a].Name, err)
	}

	f, empty, err := rs.getFixedFile(a)
	if err != nil {
		return err
	}
	if empty {
		slot.SetBuffer(pos, nil, nil)
		return nil
	}
	vf, _, err := rs.getValuesFile(a)
	if err != nil {
		return err
	}

	info := rs.frag.BookKeeping.VarTile(a, int(pos))
	offsetsSize := info.CellCount * 8

	offRes, err := tileio.Fetch(f, info.Offset, info.CompressedSize, offsetsSize, rs.frag.Schema.Codec, rs.opts.useMmap, slot.GrowCompressed)
	if err != nil {
		return newError(IORead, rs.frag.Schema.Attributes[a].Name, err)
	}
	valRes, err := tileio.Fetch(vf, info.ValuesOffset, info.ValuesCompressedSize, info.ValuesDecodedSize, rs.frag.Schema.Codec, rs.opts.useMmap, slot.GrowCompressed)
	if err != nil {
		return newError(IORead, rs.frag.Schema.Attributes[a].Name+"_var", err)
	}

	if offRes.Region != nil || valRes.Region != nil {
		slot.SetMapped(pos, offRes.Data, valRes.Data, nonNilRegions(offRes, valRes)...)
	} else {
		slot.SetBuffer(pos, offRes.Data, valRes.Data)
	}
	return nil
}

func nonNilRegions(results ...tileio.Result) []*mmapio.Region {
	var out []*mmapio.Region
	for _, r := range results {
		if r.Region != nil {
			out = append(out, r.Region)
		}
	}
	return out
}

func decodeUint64s(b []byte) []uint64 {
	n := len(b) / 8
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = rawio.Order.Uint64(b[i*8 : i*8+8])
	}
	return out
}

// housekeep releases any tile position no attribute still needs
// (spec.md §4.7): caches, mmap regions, and (implicitly, via garbage
// collection once unreferenced) cell_pos_ranges and coords.
func (rs *ReadState[T]) housekeep() error {
	if len(rs.tiles) == 0 {
		return nil
	}

	min := rs.cursors[0].tileIdx
	for _, c := range rs.cursors[1:] {
		if c.tileIdx < min {
			min = c.tileIdx
		}
	}
	if min <= 0 {
		return nil
	}

	minPos := rs.tiles[min-1].pos + 1
	if err := rs.cache.EvictBefore(minPos); err != nil {
		return newError(Invariant, "housekeeping", err)
	}

	rs.tiles = rs.tiles[min:]
	for a := range rs.cursors {
		rs.cursors[a].tileIdx -= min
	}
	return nil
}
