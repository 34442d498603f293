// Package palmdb reads the PalmDB container format that frames every
// Mobipocket/KF7/KF8 file: a fixed 78-byte database header followed by a
// record directory and the record payloads themselves.
//
// This package is read-only: writing PalmDB containers is out of scope,
// matching the DRM core's read-only relationship to Record 0.
package palmdb

import (
	"encoding/binary"
	"fmt"
)

const (
	headerSize     = 78
	recordInfoSize = 8
)

// Header is the fixed PalmDB database header.
type Header struct {
	Name                [32]byte
	Attributes          uint16
	Version             uint16
	CreationDate        uint32
	ModificationDate     uint32
	BackupDate          uint32
	ModificationNumber  uint32
	AppInfoID           uint32
	SortInfoID          uint32
	Type                [4]byte
	Creator             [4]byte
	UniqueIDSeed        uint32
	NextRecordListID    uint32
	RecordCount         uint16
}

// RecordInfo is one entry of the record directory: the byte offset of a
// record's data within the file, plus its Palm OS attribute/unique-ID
// bookkeeping fields (kept for completeness; not used by this module's DRM
// or header parsing).
type RecordInfo struct {
	Offset     uint32
	Attributes byte
	UniqueID   [3]byte
}

// Database is a fully loaded PalmDB file.
type Database struct {
	Header  Header
	Records []RecordInfo
	raw     []byte
}

// Parse parses a PalmDB container already read into memory. MOBI files are
// small enough (low hundreds of KB to a few MB) that loading the whole file
// up front, rather than streaming, is the simplest correct approach — the
// same approach libmobi's own CLI tooling takes.
func Parse(raw []byte) (*Database, error) {
	if len(raw) < headerSize {
		return nil, fmt.Errorf("palmdb: file too short for header (%d bytes)", len(raw))
	}

	var h Header
	copy(h.Name[:], raw[0:32])
	h.Attributes = binary.BigEndian.Uint16(raw[32:34])
	h.Version = binary.BigEndian.Uint16(raw[34:36])
	h.CreationDate = binary.BigEndian.Uint32(raw[36:40])
	h.ModificationDate = binary.BigEndian.Uint32(raw[40:44])
	h.BackupDate = binary.BigEndian.Uint32(raw[44:48])
	h.ModificationNumber = binary.BigEndian.Uint32(raw[48:52])
	h.AppInfoID = binary.BigEndian.Uint32(raw[52:56])
	h.SortInfoID = binary.BigEndian.Uint32(raw[56:60])
	copy(h.Type[:], raw[60:64])
	copy(h.Creator[:], raw[64:68])
	h.UniqueIDSeed = binary.BigEndian.Uint32(raw[68:72])
	h.NextRecordListID = binary.BigEndian.Uint32(raw[72:76])
	h.RecordCount = binary.BigEndian.Uint16(raw[76:78])

	dirEnd := headerSize + int(h.RecordCount)*recordInfoSize
	if dirEnd > len(raw) {
		return nil, fmt.Errorf("palmdb: record directory (%d entries) exceeds file length", h.RecordCount)
	}

	records := make([]RecordInfo, h.RecordCount)
	for i := 0; i < int(h.RecordCount); i++ {
		entry := raw[headerSize+i*recordInfoSize:]
		records[i] = RecordInfo{
			Offset:     binary.BigEndian.Uint32(entry[0:4]),
			Attributes: entry[4],
			UniqueID:   [3]byte{entry[5], entry[6], entry[7]},
		}
	}

	return &Database{Header: h, Records: records, raw: raw}, nil
}

// RecordData returns the byte range for record i: from its directory
// offset up to the next record's offset (or end of file for the last
// record). It is bounds-checked against the file length even if a
// directory entry's offset is corrupt.
func (db *Database) RecordData(i int) ([]byte, error) {
	if i < 0 || i >= len(db.Records) {
		return nil, fmt.Errorf("palmdb: record %d out of range (have %d)", i, len(db.Records))
	}
	start := int(db.Records[i].Offset)
	end := len(db.raw)
	if i+1 < len(db.Records) {
		end = int(db.Records[i+1].Offset)
	}
	if start < 0 || start > len(db.raw) {
		return nil, fmt.Errorf("palmdb: record %d offset %d out of range", i, start)
	}
	if end > len(db.raw) {
		end = len(db.raw)
	}
	if end < start {
		end = start
	}
	return db.raw[start:end], nil
}

// NumRecords is the number of records in the directory.
func (db *Database) NumRecords() int {
	return len(db.Records)
}
