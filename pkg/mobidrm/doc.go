/*
Package mobidrm implements the DRM key-recovery engine of the Mobipocket/
KF7/KF8 container format: PID validation, the on-disk DRM cookie table, and
the two key-recovery strategies keyed on a book's encryption type.

This package consolidates what libmobi's encryption.c does in C into:
  - PID validation (ValidatePID)
  - DRM cookie table parsing (ParseDRMTable)
  - Key recovery for encryption_type==1 and encryption_type>=2 (unexported
    recoverV1/recoverV2, reached through Key.SetKey)
  - A Key holder attached to a book handle (SetKey/Decrypt/DeleteKey)

# Host contract

mobidrm never touches a file on disk. Every operation here is driven by a
Book interface (see Book below) that a loader hands in: Record 0 bytes plus
the handful of MOBI/PalmDOC header fields the recovery algorithms need. This
mirrors the narrow collaborator interfaces spec.md §1 calls out as external
to the DRM core.

# Error surface

Every failure is a *DRMError carrying one of the fixed Code values (see
errors.go). A failed SetKey always leaves the Key in the "no key" state,
regardless of any previously stored key.
*/
package mobidrm
