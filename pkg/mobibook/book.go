// Package mobibook is the "host container" spec.md §1 names as an external
// collaborator of the DRM core: it owns a loaded PalmDB file, the parsed
// PalmDOC/MOBI headers, and the recovered mobidrm.Key, and offers the
// higher-level operations (text record decryption/decompression, EPUB
// assembly) that consume that key once it is set.
package mobibook

import (
	"fmt"

	"github.com/gregko/libmobi/pkg/mobidrm"
	"github.com/gregko/libmobi/pkg/mobiheader"
	"github.com/gregko/libmobi/pkg/palmdb"
)

// notSet is the sentinel MOBI headers use for an absent uint32 field.
const notSet = 0xFFFFFFFF

// Book is a fully loaded MOBI file: the PalmDB container, its PalmDOC/MOBI
// headers, the EXTH metadata block (if any), and the DRM key once recovered.
type Book struct {
	DB      *palmdb.Database
	PalmDOC mobiheader.PalmDOCHeader
	Mobi    *mobiheader.Header
	EXTH    *mobiheader.EXTHBlock
	Key     mobidrm.Key

	record0 []byte
}

// Open reads path as a PalmDB container and parses its PalmDOC/MOBI/EXTH
// headers. It does not attempt key recovery; call SetKey for that.
func Open(path string) (*Book, error) {
	db, err := palmdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mobibook: open %s: %w", path, err)
	}
	return newBook(db)
}

// OpenBytes parses raw as an in-memory PalmDB container, for callers that
// already have the file bytes (e.g. test fixtures or an HTTP upload).
func OpenBytes(raw []byte) (*Book, error) {
	db, err := palmdb.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("mobibook: parse: %w", err)
	}
	return newBook(db)
}

func newBook(db *palmdb.Database) (*Book, error) {
	record0, err := db.RecordData(0)
	if err != nil {
		return nil, fmt.Errorf("mobibook: read record 0: %w", err)
	}

	palmDOC, err := mobiheader.ParsePalmDOC(record0)
	if err != nil {
		return nil, fmt.Errorf("mobibook: parse PalmDOC header: %w", err)
	}
	mobi, err := mobiheader.ParseMOBI(record0)
	if err != nil {
		return nil, fmt.Errorf("mobibook: parse MOBI header: %w", err)
	}
	exth, err := mobiheader.ParseEXTH(record0, mobi)
	if err != nil {
		return nil, fmt.Errorf("mobibook: parse EXTH block: %w", err)
	}

	return &Book{
		DB:      db,
		PalmDOC: palmDOC,
		Mobi:    mobi,
		EXTH:    exth,
		record0: record0,
	}, nil
}

// The methods below satisfy mobidrm.Book, the narrow interface the DRM core
// consumes. Book never imports mobidrm's internals; it only implements the
// shape mobidrm.Key.SetKey asks for.

// EncryptionType implements mobidrm.Book.
func (b *Book) EncryptionType() uint32 {
	return uint32(b.PalmDOC.EncryptionType)
}

// Record0 implements mobidrm.Book.
func (b *Book) Record0() []byte {
	return b.record0
}

// PalmDOCTypeCreator implements mobidrm.Book.
func (b *Book) PalmDOCTypeCreator() (typ, creator [4]byte) {
	copy(typ[:], b.DB.Header.Type[:])
	copy(creator[:], b.DB.Header.Creator[:])
	return typ, creator
}

// MobiVersion implements mobidrm.Book.
func (b *Book) MobiVersion() (version uint32, present bool) {
	if b.Mobi == nil {
		return 0, false
	}
	return b.Mobi.Version, true
}

// HeaderLength implements mobidrm.Book.
func (b *Book) HeaderLength() uint32 {
	if b.Mobi == nil {
		return 0
	}
	return b.Mobi.HeaderLength
}

// DRMFields implements mobidrm.Book.
func (b *Book) DRMFields() (offset, count, size uint32) {
	if b.Mobi == nil {
		return notSet, 0, 0
	}
	return b.Mobi.DRMOffset, b.Mobi.DRMCount, b.Mobi.DRMSize
}

// SetKey recovers the book's DRM key, per spec.md §4.5. pid is ignored for
// encryption_type 0 or 1 and may be nil in those cases.
func (b *Book) SetKey(pid []byte) error {
	return b.Key.SetKey(b, pid)
}

// Close releases the recovered key. The backing byte slices are left to the
// garbage collector once the caller drops its reference to Book.
func (b *Book) Close() {
	b.Key.DeleteKey()
}

// FirstContentRecord is the index of the first text record, falling back to
// record 1 (record 0 is always the header) when the MOBI header is absent.
func (b *Book) FirstContentRecord() int {
	if b.Mobi != nil && b.Mobi.FirstContentRecord != 0 {
		return int(b.Mobi.FirstContentRecord)
	}
	return 1
}

// LastContentRecord is the index of the last text record (inclusive),
// falling back to the last record in the file when no MOBI header bounds it.
func (b *Book) LastContentRecord() int {
	if b.Mobi != nil {
		if b.Mobi.FirstNonBookRecord != 0 && b.Mobi.FirstNonBookRecord != notSet {
			return int(b.Mobi.FirstNonBookRecord) - 1
		}
		if b.Mobi.LastContentRecord != 0 {
			return int(b.Mobi.LastContentRecord)
		}
	}
	return b.DB.NumRecords() - 1
}
