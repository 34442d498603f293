package mobidrm

import (
	"errors"
	"fmt"
)

// Code identifies the class of a DRM failure. Values are distinct tags;
// nothing beyond equality comparison is significant about them.
type Code int

const (
	// Success is never wrapped in a *DRMError; operations that succeed
	// return a nil error. It exists only so Code has a documented zero
	// case distinct from every failure code.
	Success Code = iota
	// InitFailed marks a missing required input: no PID supplied when one
	// is required (detected before any recovery work), or Decrypt called
	// with no key set.
	InitFailed
	// DataCorrupt marks a Record 0 too short or malformed to carry the
	// header a recovery strategy needs.
	DataCorrupt
	// MallocFailed marks an allocation failure. The Go port has no
	// realistic way to hit this (make() panics rather than erroring), but
	// the code is kept so callers porting against libmobi's four-way
	// error surface have a stable mapping.
	MallocFailed
	// PIDInvalid marks a PID that is the wrong length or whose checksum
	// does not match its payload.
	PIDInvalid
	// KeyNotFound marks v2 recovery exhausting every cookie without a
	// verifying match.
	KeyNotFound
)

func (c Code) String() string {
	switch c {
	case Success:
		return "SUCCESS"
	case InitFailed:
		return "INIT_FAILED"
	case DataCorrupt:
		return "DATA_CORRUPT"
	case MallocFailed:
		return "MALLOC_FAILED"
	case PIDInvalid:
		return "DRM_PIDINV"
	case KeyNotFound:
		return "DRM_KEYNOTFOUND"
	default:
		return "UNKNOWN"
	}
}

// DRMError is the error type every exported mobidrm operation fails with.
type DRMError struct {
	Code  Code
	Msg   string
	Cause error // underlying error, if any; nil for pure validation failures
}

func (e *DRMError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("mobidrm: %s: %s: %v", e.Code, e.Msg, e.Cause)
	}
	return fmt.Sprintf("mobidrm: %s: %s", e.Code, e.Msg)
}

func (e *DRMError) Unwrap() error {
	return e.Cause
}

func newErr(code Code, msg string) error {
	return &DRMError{Code: code, Msg: msg}
}

func wrapErr(code Code, msg string, cause error) error {
	return &DRMError{Code: code, Msg: msg, Cause: cause}
}

// CodeOf extracts the Code from an error produced by this package. The
// boolean is false for a nil error or one that is not a *DRMError.
func CodeOf(err error) (Code, bool) {
	if err == nil {
		return Success, false
	}
	var drmErr *DRMError
	if errors.As(err, &drmErr) {
		return drmErr.Code, true
	}
	return 0, false
}
