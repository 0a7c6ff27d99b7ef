package copier

import "github.com/arrowlake/tilefrag/internal/rawio"

// Variable copies cells of a variable-size attribute from a tile's
// offsets/values pair into the caller's offsets and values buffers
// (spec.md §4.5). offsets holds cellNum decoded on-disk start offsets
// into values (the last cell's length is valuesTileSize minus its
// offset). Copying proceeds one whole cell at a time starting at
// run.Lo+resumeCells; a cell is only counted once both its 8-byte
// offset entry and its value bytes fit in the remaining buffer space.
// varBase is added to every written offset so it lands correctly
// relative to the caller's own values buffer rather than the on-disk
// tile (shift_var_offsets in the source this is grounded on).
func Variable(offsetBuf, valuesBuf []byte, offsets []uint64, values []byte, valuesTileSize int64, cellNum int64, run [2]int64, resumeCells int64, varBase int64) (offBytesWritten, valBytesWritten int, cellsWritten int64, done bool) {
	cell := run[0] + resumeCells
	end := run[1]

	oi, vi := 0, 0
	for cell <= end {
		length := cellLength(offsets, valuesTileSize, cellNum, cell)
		if oi+8 > len(offsetBuf) || vi+int(length) > len(valuesBuf) {
			break
		}
		rawio.Order.PutUint64(offsetBuf[oi:oi+8], uint64(varBase)+uint64(vi))
		oi += 8
		copy(valuesBuf[vi:vi+int(length)], values[offsets[cell]:offsets[cell]+length])
		vi += int(length)
		cellsWritten++
		cell++
	}

	return oi, vi, cellsWritten, cell > end
}

func cellLength(offsets []uint64, valuesTileSize int64, cellNum, cell int64) uint64 {
	if cell == cellNum-1 {
		return uint64(valuesTileSize) - offsets[cell]
	}
	return offsets[cell+1] - offsets[cell]
}
