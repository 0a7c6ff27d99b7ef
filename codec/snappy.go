package codec

import (
	"fmt"

	"github.com/golang/snappy"
)

// Snappy decompresses tiles stored in the snappy block format (not the
// snappy framing format). Not a TileDB-native codec option, but wired in
// as a faster alternative for a schema that requests it (SPEC_FULL's
// domain-stack expansion).
type Snappy struct{}

func (*Snappy) Name() string { return "snappy" }

func (*Snappy) Decode(input []byte, decodedSize int) ([]byte, error) {
	out, err := snappy.Decode(make([]byte, 0, decodedSize), input)
	if err != nil {
		return nil, fmt.Errorf("codec snappy: %w", err)
	}
	if len(out) != decodedSize {
		return nil, fmt.Errorf("codec snappy: decoded %d bytes, want %d", len(out), decodedSize)
	}
	return out, nil
}
