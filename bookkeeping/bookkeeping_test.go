package bookkeeping

import (
	"testing"

	"github.com/arrowlake/tilefrag/coord"
)

func TestTileInfoDecodedSize(t *testing.T) {
	ti := TileInfo{Offset: 0, CompressedSize: 40, CellCount: 10}
	if got := ti.DecodedSize(4); got != 40 {
		t.Fatalf("got %d, want 40", got)
	}
}

func TestBookKeepingAccessors(t *testing.T) {
	bk := &BookKeeping[int32]{
		Tiles: [][]TileInfo{
			{{Offset: 0, CompressedSize: 100, CellCount: 25}},
		},
		VarTiles: map[int][]VarTileInfo{
			1: {{
				TileInfo:             TileInfo{Offset: 0, CompressedSize: 32, CellCount: 4},
				ValuesOffset:         0,
				ValuesCompressedSize: 10,
				ValuesDecodedSize:    10,
			}},
		},
		MBRs: []coord.Subarray[int32]{
			{{Lo: 0, Hi: 3}, {Lo: 0, Hi: 7}},
		},
		TileCount: 1,
	}

	if got := bk.Tile(0, 0); got.CellCount != 25 {
		t.Fatalf("got %+v", got)
	}
	if got := bk.VarTile(1, 0); got.ValuesDecodedSize != 10 {
		t.Fatalf("got %+v", got)
	}
	if got := bk.MBR(0); got[0].Hi != 3 {
		t.Fatalf("got %+v", got)
	}
}
