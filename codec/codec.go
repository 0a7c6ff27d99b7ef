// Package codec implements the tile decompression filters named by an
// array schema's Codec field. Unlike a general filter pipeline applied in
// configured stages, each tile here carries exactly one codec end to end
// (spec.md §4.4): the schema names it once per array, not per chunk.
package codec

import "fmt"

// Codec decompresses one tile's on-disk bytes into its decoded form.
// decodedSize is the exact expected output length, derived from
// book-keeping; implementations use it to preallocate and to catch
// truncated input early.
type Codec interface {
	// Name identifies the codec as recorded in the schema.
	Name() string

	// Decode decompresses input into a buffer of exactly decodedSize
	// bytes.
	Decode(input []byte, decodedSize int) ([]byte, error)
}

// None is the identity codec for uncompressed tiles.
type None struct{}

func (None) Name() string { return "none" }

func (None) Decode(input []byte, decodedSize int) ([]byte, error) {
	if len(input) != decodedSize {
		return nil, fmt.Errorf("codec none: input is %d bytes, want %d", len(input), decodedSize)
	}
	return input, nil
}

// Registry maps a schema codec name to a constructor. New codecs
// register here rather than requiring call sites to switch on name.
var Registry = map[string]func() Codec{
	"none":    func() Codec { return None{} },
	"gzip":    func() Codec { return &Deflate{} },
	"deflate": func() Codec { return &Deflate{} },
	"snappy":  func() Codec { return &Snappy{} },
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	ctor, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("unsupported codec: %q", name)
	}
	return ctor(), nil
}
