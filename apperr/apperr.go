package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure classes the command layer
// distinguishes. Use errors.Is to classify a wrapped error.
var (
	// ErrInvalidInput marks out-of-range or malformed arguments. The
	// wrapped message names the violated constraint.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage marks persistence-layer failures (unavailable, timed out).
	ErrStorage = errors.New("storage error")

	// ErrConsistency marks an invariant violation that must abort the
	// operation before any partial write.
	ErrConsistency = errors.New("consistency violation")
)

// InvalidInputf builds an ErrInvalidInput with the specific constraint that
// was violated.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Consistencyf builds an ErrConsistency describing the violated invariant.
func Consistencyf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConsistency, fmt.Sprintf(format, args...))
}

// StorageError wraps a persistence failure. Transient failures (dropped
// connection, deadline expiry) may be retried once by the caller.
type StorageError struct {
	Op        string
	Transient bool
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// Storage wraps err as a StorageError for the given operation.
func Storage(op string, err error, transient bool) error {
	return &StorageError{Op: op, Transient: transient, Err: err}
}

// IsTransient reports whether err is a storage error safe to retry.
func IsTransient(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Transient
}
