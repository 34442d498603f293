package mobidrm

import (
	"encoding/binary"

	"github.com/gregko/libmobi/pkg/pc1"
)

// Book is the narrow read-only interface mobidrm needs from a loaded book
// handle. A PalmDB/MOBI loader implements this; mobidrm never parses a file
// itself.
type Book interface {
	// EncryptionType is the PalmDOC header's encryption_type field.
	EncryptionType() uint32
	// Record0 returns the first PalmDB record's bytes.
	Record0() []byte
	// PalmDOCTypeCreator returns the PalmDOC header's type/creator ASCII
	// tags (each exactly 4 bytes), used to pick the v1 key offset.
	PalmDOCTypeCreator() (typ, creator [4]byte)
	// MobiVersion returns the MOBI header's version field and whether a
	// MOBI header is present at all. When present is false, or version is
	// the 0xFFFFFFFF sentinel, v1 recovery uses the fixed offset 144.
	MobiVersion() (version uint32, present bool)
	// HeaderLength is the MOBI header's header_length field; only
	// meaningful when MobiVersion reports present.
	HeaderLength() uint32
	// DRMFields returns drm_offset, drm_count, drm_size from the MOBI
	// header. All zero/notSet when no MOBI header is present.
	DRMFields() (offset, count, size uint32)
}

func keyChecksum(key []byte) byte {
	var sum byte
	for _, b := range key {
		sum += b
	}
	return sum
}

// recoverV1 implements spec.md §4.4's encryption_type==1 strategy: locate
// 16 encrypted key bytes at one of three fixed offsets in Record 0 and
// decrypt them with KeyVec1V1. No PID or verification step is involved.
func recoverV1(b Book) ([]byte, error) {
	record0 := b.Record0()

	var offset uint32
	typ, creator := b.PalmDOCTypeCreator()
	switch {
	case string(typ[:]) == "TEXt" && string(creator[:]) == "REAd":
		offset = 14
	default:
		version, present := b.MobiVersion()
		if !present || version == notSet {
			offset = 144
		} else {
			offset = b.HeaderLength() + 16
		}
	}

	if uint64(offset)+KeySize > uint64(len(record0)) {
		return nil, newErr(DataCorrupt, "v1 key source offset out of range")
	}
	enc := record0[offset : offset+KeySize]

	key := make([]byte, KeySize)
	pc1.Decrypt(key, enc, KeyVec1V1[:])
	return key, nil
}

// recoverV2 implements spec.md §4.4's encryption_type>=2 strategy: derive a
// candidate key from the PID, then scan the DRM cookie table for an entry
// whose checksum matches either that candidate or the PID-independent
// default, decrypting and verifying each candidate cookie in turn.
func recoverV2(b Book, pid []byte) ([]byte, error) {
	if err := ValidatePID(pid); err != nil {
		return nil, err
	}

	pidPadded := make([]byte, KeySize)
	copy(pidPadded, pid[:PIDSize-2])

	tempKey := make([]byte, KeySize)
	pc1.Encrypt(tempKey, pidPadded, KeyVec1[:])

	tempKeyChecksum := keyChecksum(tempKey)
	defaultChecksum := keyChecksum(KeyVec1[:])

	offset, count, size := b.DRMFields()
	cookies := ParseDRMTable(b.Record0(), offset, count, size)

	plain := make([]byte, CookieSize)
	for _, c := range cookies {
		var key []byte
		switch c.Checksum {
		case tempKeyChecksum:
			key = tempKey
		case defaultChecksum:
			key = KeyVec1[:]
		default:
			continue
		}

		// Decrypt into a scratch buffer: c.Data references Record 0 and
		// must not be mutated in place (spec.md §9, "cookie cloaked in
		// buffer").
		pc1.Decrypt(plain, c.Data, key)

		ver := binary.BigEndian.Uint32(plain[0:4])
		flags := binary.BigEndian.Uint32(plain[4:8])
		if ver == c.Verification && flags&0x1F != 0 {
			bookKey := make([]byte, KeySize)
			copy(bookKey, plain[8:24])
			return bookKey, nil
		}
	}
	return nil, newErr(KeyNotFound, "no DRM cookie matched the supplied PID")
}
