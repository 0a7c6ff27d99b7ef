package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Deflate decompresses zlib-wrapped DEFLATE tiles, the "gzip" codec
// named in the schema (spec.md §4.4's read_tile_from_file_with_mmap_cmp_gzip).
// It uses klauspost/compress rather than the standard library's
// compress/zlib for its faster inflate implementation.
type Deflate struct{}

func (*Deflate) Name() string { return "gzip" }

func (*Deflate) Decode(input []byte, decodedSize int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("codec gzip: zlib reader: %w", err)
	}
	defer r.Close()

	out := make([]byte, 0, decodedSize)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("codec gzip: inflate: %w", err)
	}
	if buf.Len() != decodedSize {
		return nil, fmt.Errorf("codec gzip: decoded %d bytes, want %d", buf.Len(), decodedSize)
	}
	return buf.Bytes(), nil
}
