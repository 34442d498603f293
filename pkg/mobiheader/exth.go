package mobiheader

import (
	"encoding/binary"
	"fmt"
)

// EXTHRecord is one tag in the EXTH metadata block.
type EXTHRecord struct {
	Type uint32
	Data []byte
}

// EXTHBlock holds every EXTH tag present in a book.
type EXTHBlock struct {
	Records []EXTHRecord
}

// Well-known EXTH tag numbers.
const (
	EXTHAuthor      = 100
	EXTHPublisher   = 101
	EXTHDescription = 103
	EXTHISBN        = 104
	EXTHUpdatedTitle = 503
	EXTHASIN        = 113
)

// ParseEXTH parses the EXTH block following the MOBI header in record0,
// when header reports EXTH data is present. Returns (nil, nil) if the
// header has no EXTH block, or header is nil.
func ParseEXTH(record0 []byte, header *Header) (*EXTHBlock, error) {
	if header == nil || !header.HasEXTH() {
		return nil, nil
	}

	start := mobiStart + int(header.HeaderLength)
	if start+12 > len(record0) {
		return nil, fmt.Errorf("mobiheader: EXTH header out of range")
	}
	if string(record0[start:start+4]) != "EXTH" {
		return nil, fmt.Errorf("mobiheader: missing EXTH identifier at offset %d", start)
	}
	length := binary.BigEndian.Uint32(record0[start+4 : start+8])
	count := binary.BigEndian.Uint32(record0[start+8 : start+12])

	block := &EXTHBlock{Records: make([]EXTHRecord, 0, count)}
	pos := start + 12
	end := start + int(length)
	if end > len(record0) {
		end = len(record0)
	}
	for i := uint32(0); i < count; i++ {
		if pos+8 > end {
			break
		}
		typ := binary.BigEndian.Uint32(record0[pos : pos+4])
		size := binary.BigEndian.Uint32(record0[pos+4 : pos+8])
		if size < 8 || pos+int(size) > end {
			break
		}
		data := make([]byte, size-8)
		copy(data, record0[pos+8:pos+int(size)])
		block.Records = append(block.Records, EXTHRecord{Type: typ, Data: data})
		pos += int(size)
	}
	return block, nil
}

func (b *EXTHBlock) find(tag uint32) (string, bool) {
	if b == nil {
		return "", false
	}
	for _, r := range b.Records {
		if r.Type == tag {
			return string(r.Data), true
		}
	}
	return "", false
}

// Author returns the EXTH author tag, if present.
func (b *EXTHBlock) Author() (string, bool) { return b.find(EXTHAuthor) }

// Publisher returns the EXTH publisher tag, if present.
func (b *EXTHBlock) Publisher() (string, bool) { return b.find(EXTHPublisher) }

// Description returns the EXTH description tag, if present.
func (b *EXTHBlock) Description() (string, bool) { return b.find(EXTHDescription) }

// ISBN returns the EXTH ISBN tag, if present.
func (b *EXTHBlock) ISBN() (string, bool) { return b.find(EXTHISBN) }

// Title returns the EXTH updated-title tag, if present.
func (b *EXTHBlock) Title() (string, bool) { return b.find(EXTHUpdatedTitle) }

// ASIN returns the EXTH ASIN tag, if present.
func (b *EXTHBlock) ASIN() (string, bool) { return b.find(EXTHASIN) }
