package mobidrm

// Fixed sizes from the on-disk DRM format (spec.md §3).
const (
	PIDSize    = 10 // 8 payload bytes + 2 checksum characters
	KeySize    = 16
	CookieSize = 32

	drmEntrySize = 48 // verification(4) + size(4) + type(4) + checksum(1) + reserved(3) + cookie(32)

	// notSet is the sentinel MOBI headers use for an absent uint32 field.
	notSet = 0xFFFFFFFF
)

// KeyVec1 bootstraps key recovery for encryption_type >= 2.
var KeyVec1 = [KeySize]byte{
	0x72, 0x38, 0x33, 0xB0, 0xB4, 0xF2, 0xE3, 0xCA,
	0xDF, 0x09, 0x01, 0xD6, 0xE2, 0xE0, 0x3F, 0x96,
}

// KeyVec1V1 bootstraps key recovery for encryption_type == 1.
var KeyVec1V1 = [KeySize]byte{
	'Q', 'D', 'C', 'V', 'E', 'P', 'M', 'U',
	'6', '7', '5', 'R', 'U', 'B', 'S', 'Z',
}

// PIDAlphabet is the 34-symbol alphabet the PID checksum is drawn from.
// Note there is no letter O, to avoid confusion with the digit 0.
const PIDAlphabet = "ABCDEFGHIJKLMNPQRSTUVWXYZ123456789"
