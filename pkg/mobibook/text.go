package mobibook

import (
	"errors"
	"fmt"

	"github.com/gregko/libmobi/pkg/mobiheader"
)

// ErrHuffCDICUnsupported is returned by DecryptText when a book uses
// HUFF/CDIC compression. Decoding the Huffman/CDIC dictionary tables is
// orthogonal to the DRM core this module implements (spec.md scopes the
// core to key recovery, not to every compression scheme a MOBI file might
// use) and most DRM'd review/library copies use PalmDOC compression rather
// than HUFF/CDIC, so it is left unimplemented rather than guessed at.
var ErrHuffCDICUnsupported = errors.New("mobibook: HUFF/CDIC decompression not supported")

// DecryptText returns text record i, decrypted with the recovered key (if
// the book is encrypted) and decompressed per the PalmDOC header's
// Compression field. For an encrypted book with no key set it fails with
// the InitFailed error from Key.Decrypt.
func (b *Book) DecryptText(i int) ([]byte, error) {
	raw, err := b.DB.RecordData(i)
	if err != nil {
		return nil, fmt.Errorf("mobibook: text record %d: %w", i, err)
	}

	plainCipher := raw
	if b.EncryptionType() != 0 {
		plainCipher, err = b.Key.Decrypt(raw)
		if err != nil {
			return nil, fmt.Errorf("mobibook: decrypt record %d: %w", i, err)
		}
	}

	switch b.PalmDOC.Compression {
	case mobiheader.CompressionNone:
		return plainCipher, nil
	case mobiheader.CompressionPalmDOC:
		return lz77Decompress(plainCipher), nil
	case mobiheader.CompressionHuffCDIC:
		return nil, ErrHuffCDICUnsupported
	default:
		return nil, fmt.Errorf("mobibook: unknown compression type %d", b.PalmDOC.Compression)
	}
}

// lz77Decompress expands the classic PalmDOC compression variant used for
// MOBI text records. Control byte ranges, per the PalmDOC format:
//
//	0x00       literal NUL byte
//	0x01-0x08  the next n bytes (n = control byte) are literal, uncopied
//	0x09-0x7F  literal ASCII byte
//	0x80-0xBF  2-byte back-reference: 11-bit distance, up to 10-byte length
//	0xC0-0xFF  XOR-0x80 space-prefixed literal pair
func lz77Decompress(in []byte) []byte {
	out := make([]byte, 0, len(in)*3)
	for i := 0; i < len(in); {
		c := in[i]
		switch {
		case c == 0x00:
			out = append(out, 0x00)
			i++

		case c >= 0x01 && c <= 0x08:
			n := int(c)
			i++
			end := i + n
			if end > len(in) {
				end = len(in)
			}
			out = append(out, in[i:end]...)
			i = end

		case c <= 0x7F:
			out = append(out, c)
			i++

		case c <= 0xBF:
			if i+1 >= len(in) {
				// Truncated back-reference; nothing more to decode.
				i = len(in)
				break
			}
			c2 := in[i+1]
			packed := (uint16(c&0x3F) << 8) | uint16(c2)
			distance := int(packed >> 3)
			length := int(packed&0x07) + 3
			i += 2

			start := len(out) - distance
			if start < 0 {
				// Malformed stream; skip the reference rather than panic.
				break
			}
			for j := 0; j < length; j++ {
				out = append(out, out[start+j])
			}

		default: // 0xC0-0xFF
			out = append(out, ' ', c^0x80)
			i++
		}
	}
	return out
}
