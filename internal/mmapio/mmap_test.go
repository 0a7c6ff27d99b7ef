package mmapio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMapReadsExpectedRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tile.bin")
	if err := os.WriteFile(path, []byte("0123456789abcdef"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Map(path, 4, 6)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got := r.Bytes()[:6]
	if string(got) != "456789" {
		t.Fatalf("got %q, want %q", got, "456789")
	}
}

func TestMapUnalignedOffset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tile.bin")
	data := make([]byte, os.Getpagesize()*2)
	for i := range data {
		data[i] = byte(i)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	offset := int64(os.Getpagesize() + 10)
	r, err := Map(path, offset, 20)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got := r.Bytes()[:20]
	want := data[offset : offset+20]
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tile.bin")
	if err := os.WriteFile(path, []byte("abcdef"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Map(path, 0, 6)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
