package mobibook

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gregko/libmobi/pkg/mobiheader"
)

// buildPalmDBFile assembles a minimal PalmDB file with a TEXt/REAd
// PalmDOC-only book (no MOBI header) out of the given records.
func buildPalmDBFile(t *testing.T, records [][]byte) []byte {
	t.Helper()
	const headerSize = 78
	const recordInfoSize = 8

	header := make([]byte, headerSize)
	copy(header[60:64], []byte("TEXt"))
	copy(header[64:68], []byte("REAd"))
	binary.BigEndian.PutUint16(header[76:78], uint16(len(records)))

	dir := make([]byte, len(records)*recordInfoSize)
	offset := uint32(headerSize + len(dir))
	for i, r := range records {
		binary.BigEndian.PutUint32(dir[i*recordInfoSize:i*recordInfoSize+4], offset)
		offset += uint32(len(r))
	}

	buf := append([]byte(nil), header...)
	buf = append(buf, dir...)
	for _, r := range records {
		buf = append(buf, r...)
	}
	return buf
}

func buildRecord0(compression, encType uint16) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint16(buf[0:2], compression)
	binary.BigEndian.PutUint16(buf[12:14], encType)
	return buf
}

func TestOpenBytesNoMOBI(t *testing.T) {
	rec0 := buildRecord0(mobiheader.CompressionNone, 0)
	file := buildPalmDBFile(t, [][]byte{rec0, []byte("hello world")})

	book, err := OpenBytes(file)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	if book.Mobi != nil {
		t.Fatalf("expected no MOBI header, got %+v", book.Mobi)
	}
	if book.EncryptionType() != 0 {
		t.Fatalf("EncryptionType = %d, want 0", book.EncryptionType())
	}
}

func TestDecryptTextNoEncryptionNoCompression(t *testing.T) {
	rec0 := buildRecord0(mobiheader.CompressionNone, 0)
	file := buildPalmDBFile(t, [][]byte{rec0, []byte("plain text record")})

	book, err := OpenBytes(file)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	got, err := book.DecryptText(1)
	if err != nil {
		t.Fatalf("DecryptText: %v", err)
	}
	if string(got) != "plain text record" {
		t.Fatalf("got %q, want %q", got, "plain text record")
	}
}

func TestLZ77RoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("a"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		bytes.Repeat([]byte("abcabcabcabc"), 20),
	}
	for _, want := range cases {
		compressed := lz77CompressForTest(want)
		got := lz77Decompress(compressed)
		if !bytes.Equal(got, want) {
			t.Fatalf("round trip mismatch: input %q, got %q", want, got)
		}
	}
}

// lz77CompressForTest is a deliberately naive PalmDOC LZ77 compressor,
// written only to exercise lz77Decompress's round trip: it never emits
// back-references, only literal runs, which is a valid (if suboptimal)
// encoding under the same format.
func lz77CompressForTest(in []byte) []byte {
	var out []byte
	for i := 0; i < len(in); {
		n := len(in) - i
		if n > 8 {
			n = 8
		}
		// Only use the literal-run encoding for bytes that would otherwise
		// be ambiguous (control bytes, high bytes); plain ASCII can be
		// emitted byte-by-byte using the 0x09-0x7F literal range.
		allPlain := true
		for j := 0; j < n; j++ {
			c := in[i+j]
			if c < 0x09 || c > 0x7F {
				allPlain = false
				break
			}
		}
		if allPlain {
			out = append(out, in[i:i+n]...)
			i += n
			continue
		}
		out = append(out, byte(n))
		out = append(out, in[i:i+n]...)
		i += n
	}
	return out
}

func TestEPUBMimetypeEntry(t *testing.T) {
	rec0 := buildRecord0(mobiheader.CompressionNone, 0)
	file := buildPalmDBFile(t, [][]byte{rec0, []byte("hello")})
	book, err := OpenBytes(file)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}

	var buf bytes.Buffer
	if err := book.WriteEPUB(&buf); err != nil {
		t.Fatalf("WriteEPUB: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	if len(zr.File) == 0 {
		t.Fatalf("expected at least one zip entry")
	}
	first := zr.File[0]
	if first.Name != "mimetype" {
		t.Fatalf("first entry = %q, want %q", first.Name, "mimetype")
	}
	if first.Method != zip.Store {
		t.Fatalf("mimetype entry method = %v, want Store", first.Method)
	}
	rc, err := first.Open()
	if err != nil {
		t.Fatalf("open mimetype entry: %v", err)
	}
	defer rc.Close()
	var content bytes.Buffer
	content.ReadFrom(rc)
	if content.String() != "application/epub+zip" {
		t.Fatalf("mimetype content = %q, want %q", content.String(), "application/epub+zip")
	}
}
