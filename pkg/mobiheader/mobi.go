package mobiheader

import "encoding/binary"

// notSet is the sentinel MOBI headers use for an absent uint32 field.
const notSet = 0xFFFFFFFF

// mobiStart is the offset of the MOBI header within Record 0, right after
// the 16-byte PalmDOC header.
const mobiStart = 16

// Header is the MOBI header that (optionally) follows the PalmDOC header.
// header_length, measured from mobiStart, bounds every field below it;
// fields beyond what header_length actually covers are left at their zero
// value rather than erroring, since older-format books carry shorter
// headers.
type Header struct {
	Identifier   [4]byte
	HeaderLength uint32

	MobiType          uint32
	TextEncoding      uint32
	UniqueID          uint32
	Version           uint32 // FileFormatVersion; may be the notSet sentinel
	FirstNonBookRecord uint32
	FullNameOffset    uint32
	FullNameLength    uint32
	Locale            uint32
	MinVersion        uint32
	FirstImageIndex   uint32
	EXTHFlags         uint32

	DRMOffset uint32
	DRMCount  uint32
	DRMSize   uint32
	DRMFlags  uint32

	FirstContentRecord uint16
	LastContentRecord  uint16
}

// field offsets, relative to mobiStart (i.e. to the start of the MOBI
// header itself), following the layout used by reference MOBI readers.
const (
	offMobiType           = 8
	offTextEncoding       = 12
	offUniqueID           = 16
	offVersion            = 20
	offFirstNonBookRecord = 64
	offFullNameOffset     = 68
	offFullNameLength     = 72
	offLocale             = 76
	offMinVersion         = 88
	offFirstImageIndex    = 92
	offEXTHFlags          = 112
	offDRMOffset          = 168
	offDRMCount           = 172
	offDRMSize            = 176
	offDRMFlags           = 180
	offFirstContentRecord = 192
	offLastContentRecord  = 194
)

// HasEXTH reports whether the EXTH flag (bit 6 of EXTHFlags) is set.
func (h *Header) HasEXTH() bool {
	return h != nil && h.EXTHFlags&0x40 != 0
}

// ParseMOBI parses the MOBI header following the PalmDOC header in
// record0, if one is present. It returns (nil, nil) — not an error — when
// Record 0 does not carry a MOBI header at all (bare PalmDOC books have
// none), matching libmobi's own `m->mh == NULL` handling.
func ParseMOBI(record0 []byte) (*Header, error) {
	if len(record0) < mobiStart+8 {
		return nil, nil
	}
	ident := record0[mobiStart : mobiStart+4]
	if string(ident) != "MOBI" {
		return nil, nil
	}

	h := &Header{}
	copy(h.Identifier[:], ident)
	h.HeaderLength = binary.BigEndian.Uint32(record0[mobiStart+4 : mobiStart+8])

	// available is how many bytes of the MOBI header region actually
	// exist, bounded both by header_length and by Record 0's real length.
	available := int(h.HeaderLength)
	if mobiStart+available > len(record0) {
		available = len(record0) - mobiStart
	}

	u32 := func(off int) uint32 {
		if off+4 > available {
			return 0
		}
		return binary.BigEndian.Uint32(record0[mobiStart+off : mobiStart+off+4])
	}
	u16 := func(off int) uint16 {
		if off+2 > available {
			return 0
		}
		return binary.BigEndian.Uint16(record0[mobiStart+off : mobiStart+off+2])
	}

	h.MobiType = u32(offMobiType)
	h.TextEncoding = u32(offTextEncoding)
	h.UniqueID = u32(offUniqueID)
	h.Version = u32(offVersion)
	h.FirstNonBookRecord = u32(offFirstNonBookRecord)
	h.FullNameOffset = u32(offFullNameOffset)
	h.FullNameLength = u32(offFullNameLength)
	h.Locale = u32(offLocale)
	h.MinVersion = u32(offMinVersion)
	h.FirstImageIndex = u32(offFirstImageIndex)
	h.EXTHFlags = u32(offEXTHFlags)
	h.DRMOffset = u32(offDRMOffset)
	h.DRMCount = u32(offDRMCount)
	h.DRMSize = u32(offDRMSize)
	h.DRMFlags = u32(offDRMFlags)
	h.FirstContentRecord = u16(offFirstContentRecord)
	h.LastContentRecord = u16(offLastContentRecord)

	// A header too short to have reached the DRM fields has no DRM table;
	// represent that the same way an explicitly absent table would be
	// represented, rather than as zero values that could be mistaken for
	// "DRM table present at offset 0".
	if offDRMOffset+4 > available {
		h.DRMOffset = notSet
	}

	return h, nil
}

// VersionSet reports whether Version holds a real value rather than the
// "not set" sentinel.
func (h *Header) VersionSet() bool {
	return h != nil && h.Version != notSet
}
