package mobidrm

import "encoding/binary"

// Cookie is one entry of the DRM record table embedded in Record 0. Cookie
// references into the source Record 0 buffer rather than copying it; it
// remains valid only as long as that buffer is retained by the caller.
type Cookie struct {
	Verification uint32
	Size         uint32
	Type         uint32
	Checksum     byte
	Data         []byte // 32-byte ciphertext, sliced from Record 0
}

// ParseDRMTable walks the fixed-48-byte-stride DRM table inside record0,
// starting at drmOffset, for drmCount entries. It returns an empty table
// (not an error) whenever the table is absent or the caller has no usable
// data for it — exactly as spec.md §4.3 specifies: this is a silent guard,
// not a hard failure, since the rest of the book can still be read without
// DRM recovery being possible.
func ParseDRMTable(record0 []byte, drmOffset, drmCount, drmSize uint32) []Cookie {
	if drmOffset == notSet || drmCount == 0 {
		return nil
	}
	if uint64(drmOffset)+uint64(drmSize) > uint64(len(record0)) {
		return nil
	}

	cookies := make([]Cookie, 0, drmCount)
	pos := drmOffset
	for i := uint32(0); i < drmCount; i++ {
		if uint64(pos)+drmEntrySize > uint64(len(record0)) {
			break
		}
		entry := record0[pos : pos+drmEntrySize]
		c := Cookie{
			Verification: binary.BigEndian.Uint32(entry[0:4]),
			Size:         binary.BigEndian.Uint32(entry[4:8]),
			Type:         binary.BigEndian.Uint32(entry[8:12]),
			Checksum:     entry[12],
			// entry[13:16] is 3 reserved bytes, skipped.
			Data: entry[16:48],
		}
		cookies = append(cookies, c)
		pos += drmEntrySize
	}
	return cookies
}
