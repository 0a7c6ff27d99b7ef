package tilefrag

import (
	"github.com/arrowlake/tilefrag/coord"
	"github.com/arrowlake/tilefrag/copier"
	"github.com/arrowlake/tilefrag/overlap"
	"github.com/arrowlake/tilefrag/schema"
)

func (rs *ReadState[T]) copyDenseAttribute(a int, attr schema.Attribute, tile *overlappingTile[T], cur *cursorState, buf *AttrBuffer, written *AttrWritten) (bool, error) {
	if tile.denseRuns == nil {
		tile.denseRuns = copier.DenseCellRuns(rs.frag.Schema.CellOrder, rs.frag.Schema.TileExtents(), tile.denseRel)
	}

	if !attr.Variable {
		fresh := cur.rangeIdx == 0 && cur.resumeCells == 0
		if tile.ov == overlap.Full && rs.frag.Schema.Codec == "none" && fresh {
			attempted, done, err := rs.tryDirectFixed(a, attr, tile, cur, buf, written)
			if err != nil {
				return false, err
			}
			if attempted {
				return done, nil
			}
		}

		if err := rs.ensureFixedTileCached(a, tile.pos, attr.CellSize); err != nil {
			return false, err
		}
		slot := rs.cache.Slot(a)
		if slot.Fixed == nil {
			return true, nil
		}
		return copyFixedRuns(slot.Fixed, attr.CellSize, tile.denseRuns, cur, buf, written), nil
	}

	return rs.copyVariableRuns(a, tile.pos, tile.denseRuns, cur, buf, written)
}

func (rs *ReadState[T]) copySparseAttribute(a int, attr schema.Attribute, tile *overlappingTile[T], cur *cursorState, buf *AttrBuffer, written *AttrWritten) (bool, error) {
	if !attr.Variable {
		fresh := cur.rangeIdx == 0 && cur.resumeCells == 0
		if tile.ov == overlap.Full && rs.frag.Schema.Codec == "none" && fresh {
			attempted, done, err := rs.tryDirectFixed(a, attr, tile, cur, buf, written)
			if err != nil {
				return false, err
			}
			if attempted {
				return done, nil
			}
		}

		if err := rs.ensureFixedTileCached(a, tile.pos, attr.CellSize); err != nil {
			return false, err
		}
		slot := rs.cache.Slot(a)
		if slot.Fixed == nil {
			return true, nil
		}
		return copyFixedRuns(slot.Fixed, attr.CellSize, tile.cellPosRanges, cur, buf, written), nil
	}

	return rs.copyVariableRuns(a, tile.pos, tile.cellPosRanges, cur, buf, written)
}

// tryDirectFixed attempts the cache-bypassing direct copy of spec.md
// §4.5/§9 Open Question 1. attempted is false when the eligibility
// condition fails, telling the caller to fall through to the normal
// cached path instead.
func (rs *ReadState[T]) tryDirectFixed(a int, attr schema.Attribute, tile *overlappingTile[T], cur *cursorState, buf *AttrBuffer, written *AttrWritten) (attempted, done bool, err error) {
	f, empty, err := rs.getFixedFile(a)
	if err != nil {
		return false, false, err
	}
	if empty {
		return true, true, nil
	}

	info := rs.frag.BookKeeping.Tile(a, int(tile.pos))
	tileByteSize := info.DecodedSize(attr.CellSize)
	free := int64(len(buf.Data) - written.Bytes)

	if !copier.DirectEligible(free, tileByteSize, cur.resumeCells*int64(attr.CellSize)) {
		return false, false, nil
	}

	n, err := copier.Direct(f, info.Offset, buf.Data[written.Bytes:written.Bytes+int(tileByteSize)])
	if err != nil {
		return true, false, newError(IORead, "direct-copy", err)
	}
	written.Bytes += n
	return true, true, nil
}

// copyFixedRuns copies whole cells out of a cached tile's fixed part
// across one or more cell-index runs, resuming at cur.rangeIdx /
// cur.resumeCells across calls.
func copyFixedRuns(src []byte, cellSize int, runs []coord.Range[int64], cur *cursorState, buf *AttrBuffer, written *AttrWritten) bool {
	for cur.rangeIdx < len(runs) {
		if len(buf.Data)-written.Bytes <= 0 {
			return false
		}
		run := runs[cur.rangeIdx]
		n, cells, done := copier.Fixed(buf.Data[written.Bytes:], src, cellSize, run, cur.resumeCells)
		written.Bytes += n
		if !done {
			cur.resumeCells += cells
			return false
		}
		cur.rangeIdx++
		cur.resumeCells = 0
	}
	return true
}

// copyVariableRuns mirrors copyFixedRuns for a variable-size attribute,
// emitting rewritten offsets and raw values in lockstep.
func (rs *ReadState[T]) copyVariableRuns(a int, pos int64, runs []coord.Range[int64], cur *cursorState, buf *AttrBuffer, written *AttrWritten) (bool, error) {
	if err := rs.ensureVarTileCached(a, pos); err != nil {
		return false, err
	}
	slot := rs.cache.Slot(a)
	if slot.Fixed == nil {
		return true, nil
	}
	vinfo := rs.frag.BookKeeping.VarTile(a, int(pos))
	offsets := decodeUint64s(slot.Fixed)

	for cur.rangeIdx < len(runs) {
		if len(buf.Data)-written.Bytes <= 0 || len(buf.VarData)-written.VarBytes <= 0 {
			return false, nil
		}
		run := runs[cur.rangeIdx]
		offN, valN, cells, done := copier.Variable(
			buf.Data[written.Bytes:], buf.VarData[written.VarBytes:],
			offsets, slot.Values, vinfo.ValuesDecodedSize, vinfo.CellCount,
			[2]int64{run.Lo, run.Hi}, cur.resumeCells, int64(written.VarBytes))
		written.Bytes += offN
		written.VarBytes += valN
		if !done {
			cur.resumeCells += cells
			return false, nil
		}
		cur.rangeIdx++
		cur.resumeCells = 0
	}
	return true, nil
}
