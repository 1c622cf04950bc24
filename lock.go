// Cross-process exclusive locking on a marker file.
//
// A FileLock guards the resource at path by locking path+".lck". It has two
// states: Unlocked (f == nil) and Locked (f is an open descriptor holding the
// OS lock). Lock never leaves an open but unlocked descriptor behind, and
// Unlock returns to Unlocked even when close fails so that the next Lock
// does not short-circuit on a stale handle.
//
// FileLock has no internal mutex. It excludes other processes, and other
// FileLock instances on the same marker, but one instance must not be used
// from several goroutines at once. Use Exclusive for that.
package advlock

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// MarkerSuffix is appended to the protected path to name the marker file.
const MarkerSuffix = ".lck"

// Permissions for created marker files and their parent directories.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FileLock is an exclusive advisory lock on a marker file.
type FileLock struct {
	path   string       // Protected resource
	marker string       // path + MarkerSuffix
	log    *slog.Logger // Transition and release-failure logging
	f      *os.File     // Non-nil only while locked
}

// Option configures a FileLock.
type Option func(*FileLock)

// WithLogger sets the logger used for lock transitions and for close errors
// absorbed by Unlock. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(l *FileLock) {
		if logger != nil {
			l.log = logger
		}
	}
}

// New returns an unlocked FileLock for the resource at path. No I/O happens
// until Lock.
func New(path string, opts ...Option) *FileLock {
	l := &FileLock{
		path:   path,
		marker: path + MarkerSuffix,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the protected resource path.
func (l *FileLock) Path() string { return l.path }

// MarkerPath returns the path of the file that carries the OS lock.
func (l *FileLock) MarkerPath() string { return l.marker }

// Locked reports whether this instance holds the lock.
func (l *FileLock) Locked() bool { return l.f != nil }

// Lock acquires the exclusive lock, blocking until no other holder remains.
// It returns nil at once if this instance already holds the lock.
//
// The marker file and any missing parent directories are created as
// needed and are never removed. Failures are reported as
// *LockAcquisitionError and leave the instance unlocked.
func (l *FileLock) Lock() error {
	if l.f != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.marker), dirPerm); err != nil {
		return &LockAcquisitionError{Op: "mkdir", Path: l.marker, Err: err}
	}

	f, err := os.OpenFile(l.marker, os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return &LockAcquisitionError{Op: "open", Path: l.marker, Err: err}
	}

	// Close f on every path that does not hand it to l, panics included.
	locked := false
	defer func() {
		if !locked {
			_ = f.Close()
		}
	}()

	if err := lockFile(f); err != nil {
		return &LockAcquisitionError{Op: "lock", Path: l.marker, Err: err}
	}

	l.f = f
	locked = true
	l.log.Debug("lock acquired", "path", l.marker)
	return nil
}

// Unlock releases the lock. It is a no-op when not locked. The instance is
// unlocked when Unlock returns; a failure to close the descriptor is logged
// and otherwise ignored, so Unlock is safe in deferred cleanup.
func (l *FileLock) Unlock() {
	if err := l.Close(); err != nil {
		l.log.Warn("lock release failed", "path", l.marker, "err", err)
	}
}

// Close is Unlock for callers that want the close error. The instance is
// unlocked when Close returns, whatever the error.
func (l *FileLock) Close() error {
	f := l.f
	if f == nil {
		return nil
	}
	defer func() { l.f = nil }()

	if err := releaseFile(f); err != nil {
		return fmt.Errorf("advlock: release %s: %w", l.marker, err)
	}
	l.log.Debug("lock released", "path", l.marker)
	return nil
}
