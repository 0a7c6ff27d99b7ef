// Package tilecache holds, per attribute, the single tile currently
// positioned for copying (spec.md §3's "Tile", invariant 5: a tile is
// cached for at most one engine position per attribute).
package tilecache

import "github.com/arrowlake/tilefrag/internal/mmapio"

// Slot is one attribute's cached tile. Variable-length attributes use
// Values in addition to Fixed (which then holds the offsets tile);
// fixed-size attributes use only Fixed.
type Slot struct {
	TilePos int64 // global tile position; -1 when the slot is empty

	Fixed  []byte
	Values []byte

	// Compressed is scratch space reused across fetches for this
	// attribute, matching the source's tile_compressed_ buffer: sized
	// up once to the largest compressed tile seen, never shrunk.
	Compressed []byte

	// mmapRegions holds any memory mappings backing Fixed/Values, kept
	// open until the slot is evicted (spec.md §9 Open Question 4 pins
	// the mapping across overflow pauses).
	mmapRegions []*mmapio.Region
}

func newSlot() *Slot {
	return &Slot{TilePos: -1}
}

// Positioned reports whether the slot currently holds pos.
func (s *Slot) Positioned(pos int64) bool {
	return s.TilePos == pos
}

// Evict releases any mmap regions and marks the slot empty. Fixed and
// Values are left allocated for reuse by the next Set, except when they
// were themselves mmap-backed (set to nil so the next fetch remaps
// fresh, rather than reusing another file's stale mapping length).
func (s *Slot) Evict() error {
	var first error
	for _, r := range s.mmapRegions {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	if len(s.mmapRegions) > 0 {
		s.Fixed = nil
		s.Values = nil
	}
	s.mmapRegions = nil
	s.TilePos = -1
	return first
}

// SetBuffer installs tile data fetched via the read-into-buffer path.
func (s *Slot) SetBuffer(pos int64, fixed, values []byte) {
	s.TilePos = pos
	s.Fixed = fixed
	s.Values = values
}

// SetMapped installs tile data fetched via mmap, retaining the regions
// so Evict can unmap them later.
func (s *Slot) SetMapped(pos int64, fixed, values []byte, regions ...*mmapio.Region) {
	s.TilePos = pos
	s.Fixed = fixed
	s.Values = values
	s.mmapRegions = regions
}

// GrowCompressed ensures the compressed scratch buffer has room for at
// least n bytes, reusing the existing allocation when possible.
func (s *Slot) GrowCompressed(n int) []byte {
	if cap(s.Compressed) < n {
		s.Compressed = make([]byte, n)
	} else {
		s.Compressed = s.Compressed[:n]
	}
	return s.Compressed
}

// Cache is the per-attribute array of cache slots, indexed by attribute
// position in the schema's attribute list.
type Cache struct {
	slots []*Slot
}

// New returns a Cache with nAttrs empty slots.
func New(nAttrs int) *Cache {
	c := &Cache{slots: make([]*Slot, nAttrs)}
	for i := range c.slots {
		c.slots[i] = newSlot()
	}
	return c
}

// Slot returns attribute attr's cache slot.
func (c *Cache) Slot(attr int) *Slot {
	return c.slots[attr]
}

// EvictBefore evicts every attribute's slot whose tile position is
// strictly less than minPos, the housekeeping sweep of spec.md §4.7.
func (c *Cache) EvictBefore(minPos int64) error {
	var first error
	for _, s := range c.slots {
		if s.TilePos >= 0 && s.TilePos < minPos {
			if err := s.Evict(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}
