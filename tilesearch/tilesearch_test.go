package tilesearch

import (
	"reflect"
	"testing"

	"github.com/arrowlake/tilefrag/coord"
)

func domain10x10(extent int32) []coord.Domain[int32] {
	return []coord.Domain[int32]{
		{Lo: 0, Hi: 9, Extent: extent},
		{Lo: 0, Hi: 9, Extent: extent},
	}
}

func TestDenseRangeS1(t *testing.T) {
	sub := coord.Subarray[int32]{{Lo: 0, Hi: 4}, {Lo: 0, Hi: 4}}
	got := DenseRange(domain10x10(5), sub)
	want := []coord.Range[int64]{{Lo: 0, Hi: 0}, {Lo: 0, Hi: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDenseRangeS2SpansTwoTiles(t *testing.T) {
	sub := coord.Subarray[int32]{{Lo: 0, Hi: 0}, {Lo: 0, Hi: 9}}
	got := DenseRange(domain10x10(5), sub)
	want := []coord.Range[int64]{{Lo: 0, Hi: 0}, {Lo: 0, Hi: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestDenseEnumeratorRowMajor(t *testing.T) {
	rng := []coord.Range[int64]{{Lo: 0, Hi: 1}, {Lo: 0, Hi: 1}}
	e := NewDenseEnumerator(coord.RowMajor, rng)

	var got [][]int64
	for {
		tile, ok := e.Next()
		if !ok {
			break
		}
		got = append(got, append([]int64(nil), tile...))
	}
	want := [][]int64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDenseEnumeratorEmptyRange(t *testing.T) {
	rng := []coord.Range[int64]{{Lo: 3, Hi: 1}}
	e := NewDenseEnumerator(coord.RowMajor, rng)
	if _, ok := e.Next(); ok {
		t.Fatal("expected no tiles for an empty range")
	}
}

// S5: cells at (0,0),(3,7),(5,1),(9,9); tile extent 5 over a 10x10
// domain gives tile MBRs: tile0 rows[0,4] -> {(0,0),(3,7)} MBR
// [0,3]x[0,7], tile1 rows[5,9] -> {(5,1),(9,9)} MBR [5,9]x[1,9].
func TestSparseRangeRowColS5(t *testing.T) {
	mbrs := []coord.Subarray[int32]{
		{{Lo: 0, Hi: 3}, {Lo: 0, Hi: 7}},
		{{Lo: 5, Hi: 9}, {Lo: 1, Hi: 9}},
	}
	sub := coord.Subarray[int32]{{Lo: 2, Hi: 7}, {Lo: 0, Hi: 9}}
	got, ok := SparseRangeRowCol(coord.RowMajor, mbrs, sub)
	if !ok {
		t.Fatal("expected a non-empty range")
	}
	if got != (coord.Range[int64]{Lo: 0, Hi: 1}) {
		t.Fatalf("got %+v, want both tiles in range", got)
	}
}

func TestSparseRangeRowColNoMatch(t *testing.T) {
	mbrs := []coord.Subarray[int32]{
		{{Lo: 0, Hi: 3}, {Lo: 0, Hi: 7}},
	}
	sub := coord.Subarray[int32]{{Lo: 100, Hi: 200}, {Lo: 0, Hi: 9}}
	_, ok := SparseRangeRowCol(coord.RowMajor, mbrs, sub)
	if ok {
		t.Fatal("expected no tiles to qualify")
	}
}
