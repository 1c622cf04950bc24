// Package advlock provides a cross-process exclusive lock backed by the
// filesystem. A FileLock protects a resource identified by a path by taking
// an OS advisory lock (flock on Unix, LockFileEx on Windows) on a companion
// marker file next to it. The marker file carries no payload and is never
// removed; its only purpose is to be a lockable handle.
//
// The lock is advisory. Only callers that go through this package are
// excluded; a process that writes the protected resource without locking
// bypasses it entirely.
//
// FileLock only excludes other processes. Exclusive composes it with a
// sync.Mutex for exclusion between goroutines as well, and Registry hands
// out Exclusive locks by resource name.
package advlock

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic handling. Acquisition failures are
// reported as *LockAcquisitionError, which matches ErrLockAcquisition
// under errors.Is.
var (
	ErrLockAcquisition  = errors.New("lock acquisition failed")
	ErrEmptyName        = errors.New("lock name cannot be empty")
	ErrNoDir            = errors.New("registry directory not set")
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
)

// LockAcquisitionError records a failed Lock together with the step that
// failed and the marker path it was working on.
type LockAcquisitionError struct {
	Op   string // "mkdir", "open" or "lock"
	Path string // Marker file path
	Err  error  // Underlying cause
}

func (e *LockAcquisitionError) Error() string {
	return fmt.Sprintf("advlock: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LockAcquisitionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrLockAcquisition.
func (e *LockAcquisitionError) Is(target error) bool {
	return target == ErrLockAcquisition
}
