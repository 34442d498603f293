package mobidrm

import "github.com/gregko/libmobi/pkg/pc1"

// Key holds a recovered 16-byte book key alongside a book handle. The zero
// value has no key set.
type Key struct {
	bytes []byte // nil when unset; always exactly KeySize when set
}

// Set reports whether a key is currently stored.
func (k *Key) Set() bool {
	return k != nil && k.bytes != nil
}

// SetKey recovers the book key for b and stores it in k, per spec.md §4.5:
//   - encryption_type == 0: success, no key stored (book isn't encrypted).
//   - encryption_type == 1: pid is ignored; v1 recovery runs unconditionally.
//   - encryption_type >= 2: pid is required and validated before any
//     recovery work runs.
//
// A failed call always leaves k in the "no key" state, even if it
// previously held one.
func (k *Key) SetKey(b Book, pid []byte) error {
	encType := b.EncryptionType()

	switch {
	case encType == 0:
		return nil

	case encType == 1:
		key, err := recoverV1(b)
		if err != nil {
			k.bytes = nil
			return err
		}
		k.bytes = key
		return nil

	default:
		if pid == nil {
			k.bytes = nil
			return newErr(InitFailed, "pid required for encryption_type >= 2")
		}
		if len(pid) != PIDSize {
			k.bytes = nil
			return newErr(PIDInvalid, "pid must be 10 bytes")
		}
		key, err := recoverV2(b, pid)
		if err != nil {
			k.bytes = nil
			return err
		}
		k.bytes = key
		return nil
	}
}

// DeleteKey clears any stored key. Safe to call when no key is set.
func (k *Key) DeleteKey() {
	if k == nil {
		return
	}
	for i := range k.bytes {
		k.bytes[i] = 0
	}
	k.bytes = nil
}

// Decrypt runs PC1 decrypt over in using the stored key, writing the result
// into a freshly allocated buffer. Fails with InitFailed if no key is set.
func (k *Key) Decrypt(in []byte) ([]byte, error) {
	if !k.Set() {
		return nil, newErr(InitFailed, "no key set")
	}
	out := make([]byte, len(in))
	pc1.Decrypt(out, in, k.bytes)
	return out, nil
}

// Bytes returns the stored 16-byte key, or nil if none is set. The returned
// slice aliases internal storage; callers must not mutate it.
func (k *Key) Bytes() []byte {
	if !k.Set() {
		return nil
	}
	return k.bytes
}
