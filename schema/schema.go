// Package schema defines the array schema oracle the read engine consumes.
//
// Loading a schema from its on-disk representation is out of scope (spec.md
// §1): this package defines the data contract — attribute list, types, cell
// order, dense/sparse flag, domain, tile extents, compression codec,
// variable-length flags — that an already-loaded schema must satisfy.
package schema

import "github.com/arrowlake/tilefrag/coord"

// Geometry distinguishes the two array layouts the read engine supports.
type Geometry int

const (
	Dense Geometry = iota
	Sparse
)

func (g Geometry) String() string {
	if g == Sparse {
		return "sparse"
	}
	return "dense"
}

// Attribute describes one named, typed field stored per cell.
type Attribute struct {
	Name string

	// CellSize is the fixed on-disk size in bytes of one cell's value.
	// Ignored (and must be 0) when Variable is true.
	CellSize int

	// Variable marks a variable-length attribute: values live in a
	// companion "<name>_var.tdb" file addressed by per-cell offsets
	// stored in "<name>.tdb" (spec.md §3).
	Variable bool
}

// Schema is the read engine's read-only view of an array's schema.
type Schema[T coord.Ordered] struct {
	Geometry  Geometry
	CellOrder coord.Order

	// Domain has one entry per dimension, each carrying that
	// dimension's bounds and tile extent.
	Domain     []coord.Domain[T]
	Attributes []Attribute

	// Codec identifies the compression applied to every attribute's
	// tiles; it is a single schema-wide setting in this engine, matching
	// spec.md §4.4 ("the codec is a parameter of book-keeping, not baked
	// in").
	Codec string
}

// Rank returns the number of dimensions.
func (s *Schema[T]) Rank() int {
	return len(s.Domain)
}

// AttributeIndex returns the position of name in Attributes, or -1.
func (s *Schema[T]) AttributeIndex(name string) int {
	for i, a := range s.Attributes {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// TileCapacity returns the number of cells a full tile holds: the product
// of per-dimension tile extents. Dense fragments: every tile has exactly
// this many cells. Sparse fragments: every tile except possibly the last
// has this many; the last tile's actual count comes from book-keeping
// (spec.md §4.2 note 2), never from this value.
func (s *Schema[T]) TileCapacity() int64 {
	n := int64(1)
	for _, d := range s.Domain {
		n *= int64(d.Extent)
	}
	return n
}

// TileExtents returns the per-dimension tile extents as int64, the shape
// CellIndex and the tile-search code operate on.
func (s *Schema[T]) TileExtents() []int64 {
	out := make([]int64, len(s.Domain))
	for i, d := range s.Domain {
		out[i] = int64(d.Extent)
	}
	return out
}

// TileDomainExtents returns, per dimension, the number of tiles spanning
// the full domain — the shape of tile-domain space itself.
func (s *Schema[T]) TileDomainExtents() []int64 {
	out := make([]int64, len(s.Domain))
	for i, d := range s.Domain {
		span := int64(d.Hi) - int64(d.Lo) + 1
		extent := int64(d.Extent)
		out[i] = (span + extent - 1) / extent
	}
	return out
}
