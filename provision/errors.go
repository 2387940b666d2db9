package provision

import (
	"errors"
	"fmt"
)

// ErrVerificationMismatch is the one failure operators see: the byte read
// back is not the byte written. Storage failures are reported the same way on
// the console and also match this error.
var ErrVerificationMismatch = errors.New("verification mismatch")

// Storage operations named in StorageError.
const (
	OpBegin  = "begin"
	OpWrite  = "write"
	OpCommit = "commit"
	OpRead   = "read"
)

// StorageError records which storage step failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// MismatchError carries the values of a failed comparison.
type MismatchError struct {
	Want byte
	Got  byte
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: wrote %d, read %d", ErrVerificationMismatch, e.Want, e.Got)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrVerificationMismatch
}
