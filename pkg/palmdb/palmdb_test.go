package palmdb

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildTestFile assembles a minimal two-record PalmDB file for tests.
func buildTestFile(t *testing.T, rec0, rec1 []byte) []byte {
	t.Helper()
	const recordCount = 2
	dirSize := recordCount * recordInfoSize
	header := make([]byte, headerSize)
	copy(header[60:64], []byte("TEXt"))
	copy(header[64:68], []byte("REAd"))
	binary.BigEndian.PutUint16(header[76:78], recordCount)

	rec0Offset := uint32(headerSize + dirSize)
	rec1Offset := rec0Offset + uint32(len(rec0))

	dir := make([]byte, dirSize)
	binary.BigEndian.PutUint32(dir[0:4], rec0Offset)
	dir[4] = 0x40
	binary.BigEndian.PutUint32(dir[8:12], rec1Offset)
	dir[12] = 0x00

	buf := append([]byte(nil), header...)
	buf = append(buf, dir...)
	buf = append(buf, rec0...)
	buf = append(buf, rec1...)
	return buf
}

func TestParseAndRecordData(t *testing.T) {
	rec0 := bytes.Repeat([]byte{0xAA}, 16)
	rec1 := bytes.Repeat([]byte{0xBB}, 8)
	file := buildTestFile(t, rec0, rec1)

	db, err := Parse(file)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if string(db.Header.Type[:]) != "TEXt" || string(db.Header.Creator[:]) != "REAd" {
		t.Fatalf("type/creator = %q/%q", db.Header.Type, db.Header.Creator)
	}
	if db.NumRecords() != 2 {
		t.Fatalf("NumRecords = %d, want 2", db.NumRecords())
	}

	got0, err := db.RecordData(0)
	if err != nil {
		t.Fatalf("RecordData(0): %v", err)
	}
	if !bytes.Equal(got0, rec0) {
		t.Fatalf("record 0 = %x, want %x", got0, rec0)
	}

	got1, err := db.RecordData(1)
	if err != nil {
		t.Fatalf("RecordData(1): %v", err)
	}
	if !bytes.Equal(got1, rec1) {
		t.Fatalf("record 1 = %x, want %x", got1, rec1)
	}
}

func TestRecordDataOutOfRange(t *testing.T) {
	file := buildTestFile(t, []byte{1, 2, 3}, []byte{4, 5})
	db, err := Parse(file)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := db.RecordData(5); err == nil {
		t.Fatalf("RecordData(5) should fail on a 2-record database")
	}
}

func TestParseTooShort(t *testing.T) {
	if _, err := Parse([]byte{1, 2, 3}); err == nil {
		t.Fatalf("Parse of a too-short buffer should fail")
	}
}

func TestParseDirectoryOverrun(t *testing.T) {
	header := make([]byte, headerSize)
	binary.BigEndian.PutUint16(header[76:78], 100) // claims 100 records, file is too short
	if _, err := Parse(header); err == nil {
		t.Fatalf("Parse should fail when record directory exceeds file length")
	}
}
