package overlap

import (
	"testing"

	"github.com/arrowlake/tilefrag/coord"
)

func TestDenseFull(t *testing.T) {
	extent := []int64{5, 5}
	rel := []coord.Range[int64]{{Lo: 0, Hi: 4}, {Lo: 0, Hi: 4}}
	if got := Dense(coord.RowMajor, extent, rel); got != Full {
		t.Fatalf("got %v, want Full", got)
	}
}

func TestDenseNone(t *testing.T) {
	extent := []int64{5, 5}
	rel := []coord.Range[int64]{{Lo: 3, Hi: 1}, {Lo: 0, Hi: 4}}
	if got := Dense(coord.RowMajor, extent, rel); got != None {
		t.Fatalf("got %v, want None", got)
	}
}

// S2: a single row, all columns -> contiguous.
func TestDensePartialContiguousRowMajor(t *testing.T) {
	extent := []int64{5, 5}
	rel := []coord.Range[int64]{{Lo: 0, Hi: 0}, {Lo: 0, Hi: 4}}
	if got := Dense(coord.RowMajor, extent, rel); got != PartialContiguous {
		t.Fatalf("got %v, want PartialContiguous", got)
	}
}

// S3: all rows, a narrow column slice -> non-contiguous.
func TestDensePartialNonContiguousRowMajor(t *testing.T) {
	extent := []int64{5, 5}
	rel := []coord.Range[int64]{{Lo: 0, Hi: 4}, {Lo: 2, Hi: 3}}
	if got := Dense(coord.RowMajor, extent, rel); got != PartialNonContiguous {
		t.Fatalf("got %v, want PartialNonContiguous", got)
	}
}

// Column-major mirrors row-major with dimension roles swapped.
func TestDensePartialContiguousColMajor(t *testing.T) {
	extent := []int64{5, 5}
	rel := []coord.Range[int64]{{Lo: 0, Hi: 4}, {Lo: 0, Hi: 0}}
	if got := Dense(coord.ColMajor, extent, rel); got != PartialContiguous {
		t.Fatalf("got %v, want PartialContiguous", got)
	}
}

func TestDenseHilbertConservative(t *testing.T) {
	extent := []int64{5, 5}
	rel := []coord.Range[int64]{{Lo: 0, Hi: 0}, {Lo: 0, Hi: 4}}
	if got := Dense(coord.Hilbert, extent, rel); got != PartialNonContiguous {
		t.Fatalf("got %v, want PartialNonContiguous (conservative)", got)
	}
}

func TestSparseClassify(t *testing.T) {
	if got := Sparse(nil); got != None {
		t.Fatalf("got %v, want None", got)
	}
	one := []coord.Range[int64]{{Lo: 2, Hi: 5}}
	if got := Sparse(one); got != PartialContiguous {
		t.Fatalf("got %v, want PartialContiguous", got)
	}
	many := []coord.Range[int64]{{Lo: 0, Hi: 0}, {Lo: 5, Hi: 5}}
	if got := Sparse(many); got != PartialNonContiguous {
		t.Fatalf("got %v, want PartialNonContiguous", got)
	}
}

func TestSparseFull(t *testing.T) {
	full := []coord.Range[int64]{{Lo: 0, Hi: 9}}
	if !SparseFull(full, 10) {
		t.Fatal("expected full MBR containment to report SparseFull")
	}
	partial := []coord.Range[int64]{{Lo: 0, Hi: 5}}
	if SparseFull(partial, 10) {
		t.Fatal("did not expect partial range to report SparseFull")
	}
}
