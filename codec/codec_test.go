package codec

import (
	"bytes"
	"testing"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"
)

func TestNoneRoundTrip(t *testing.T) {
	data := []byte("tile bytes")
	got, err := None{}.Decode(data, len(data))
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestNoneSizeMismatch(t *testing.T) {
	_, err := None{}.Decode([]byte("abc"), 4)
	require.Error(t, err)
}

func TestDeflateRoundTrip(t *testing.T) {
	want := bytes.Repeat([]byte("cell-data"), 64)

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(want)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	d := &Deflate{}
	got, err := d.Decode(buf.Bytes(), len(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.Equal(t, "gzip", d.Name())
}

func TestSnappyRoundTrip(t *testing.T) {
	want := bytes.Repeat([]byte("cell-data"), 64)
	encoded := snappy.Encode(nil, want)

	s := &Snappy{}
	got, err := s.Decode(encoded, len(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("lz4")
	require.Error(t, err)
}

func TestLookupKnown(t *testing.T) {
	for _, name := range []string{"none", "gzip", "deflate", "snappy"} {
		c, err := Lookup(name)
		require.NoError(t, err)
		require.NotNil(t, c)
	}
}
