// Package bookkeeping defines the per-fragment index the read engine
// consults to locate and size tiles on disk. Loading it from its
// on-disk representation is out of scope (spec.md §1); this package is
// the data contract an already-loaded index satisfies.
package bookkeeping

import "github.com/arrowlake/tilefrag/coord"

// TileInfo describes one tile of one attribute's on-disk tile file.
type TileInfo struct {
	// Offset and CompressedSize locate the tile's compressed (or, for
	// the "none" codec, raw) bytes within the attribute's tile file.
	Offset         int64
	CompressedSize int64

	// CellCount is the number of cells the tile actually holds. For
	// dense fragments this equals the schema's tile capacity for every
	// tile. For sparse fragments the last tile of an attribute may hold
	// fewer cells than capacity (spec.md §4.2 note 2).
	CellCount int64
}

// DecodedSize returns the tile's decoded byte size given the fixed
// per-cell size of the attribute it belongs to.
func (t TileInfo) DecodedSize(cellSize int) int64 {
	return t.CellCount * int64(cellSize)
}

// VarTileInfo additionally locates a variable-length attribute's values
// tile, alongside the fixed-size offsets tile described by TileInfo.
type VarTileInfo struct {
	TileInfo
	ValuesOffset         int64
	ValuesCompressedSize int64
	ValuesDecodedSize    int64
}

// BookKeeping is one attribute-major, tile-minor index over a fragment's
// tiles, plus the per-tile MBRs sparse fragments need for pruning.
type BookKeeping[T coord.Ordered] struct {
	// Tiles[attrIndex][tileIndex] locates that attribute's tile.
	Tiles [][]TileInfo

	// VarTiles holds entries only for attributes marked Variable in the
	// schema; indexed the same way as Tiles.
	VarTiles map[int][]VarTileInfo

	// MBRs holds one bounding subarray per tile, present only for
	// sparse fragments (spec.md §4.1's "sparse: per-tile MBR").
	MBRs []coord.Subarray[T]

	// CoordsTiles locates the sparse coordinates tile file
	// ("__coords.tdb"), one entry per tile, read to compute
	// cell_pos_ranges (spec.md §4.3). Unused for dense fragments.
	CoordsTiles []TileInfo

	// TileCount is the number of tiles every attribute's Tiles entry
	// has; kept redundantly for cheap bounds checks.
	TileCount int
}

// Tile returns the TileInfo for the given attribute and tile index.
func (bk *BookKeeping[T]) Tile(attr, tile int) TileInfo {
	return bk.Tiles[attr][tile]
}

// VarTile returns the VarTileInfo for a variable-length attribute's
// tile.
func (bk *BookKeeping[T]) VarTile(attr, tile int) VarTileInfo {
	return bk.VarTiles[attr][tile]
}

// MBR returns the bounding subarray of a sparse tile.
func (bk *BookKeeping[T]) MBR(tile int) coord.Subarray[T] {
	return bk.MBRs[tile]
}
