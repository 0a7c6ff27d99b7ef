package tilefrag

import (
	"github.com/google/uuid"

	"github.com/arrowlake/tilefrag/backend"
	"github.com/arrowlake/tilefrag/bookkeeping"
	"github.com/arrowlake/tilefrag/coord"
	"github.com/arrowlake/tilefrag/schema"
)

// Fragment binds a fragment's storage, schema, and book-keeping index
// into the read-only triple a ReadState is constructed against
// (spec.md §3's Lifecycle: "created with (fragment, book_keeping)").
type Fragment[T coord.Ordered] struct {
	ID uuid.UUID

	Schema      *schema.Schema[T]
	BookKeeping *bookkeeping.BookKeeping[T]
	Backend     backend.Backend
}

// NewFragment returns a Fragment with a freshly generated identity.
func NewFragment[T coord.Ordered](sch *schema.Schema[T], bk *bookkeeping.BookKeeping[T], b backend.Backend) *Fragment[T] {
	return &Fragment[T]{
		ID:          uuid.New(),
		Schema:      sch,
		BookKeeping: bk,
		Backend:     b,
	}
}
