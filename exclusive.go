// In-process plus cross-process exclusion.
//
// A FileLock keeps other processes out but has no protection against two
// goroutines sharing one instance. Exclusive pairs it with a mutex held for
// as long as the file lock is. The mutex is always taken before the file
// lock and released after it, so goroutines queue on the mutex and only the
// winner waits on the OS.
package advlock

import "sync"

// Exclusive is a FileLock guarded by a mutex. It is safe for concurrent
// use. As with sync.Mutex, only the holder may call Unlock.
type Exclusive struct {
	mu   sync.Mutex
	file *FileLock
}

// NewExclusive returns an unlocked Exclusive for the resource at path.
func NewExclusive(path string, opts ...Option) *Exclusive {
	return &Exclusive{file: New(path, opts...)}
}

// MarkerPath returns the path of the underlying marker file.
func (e *Exclusive) MarkerPath() string { return e.file.MarkerPath() }

// Lock blocks until both the mutex and the file lock are held. If the file
// lock cannot be acquired the mutex is released and the error returned.
func (e *Exclusive) Lock() error {
	e.mu.Lock()
	if err := e.file.Lock(); err != nil {
		e.mu.Unlock()
		return err
	}
	return nil
}

// Unlock releases the file lock, then the mutex.
func (e *Exclusive) Unlock() {
	e.file.Unlock()
	e.mu.Unlock()
}

// Do runs fn while holding the lock.
func (e *Exclusive) Do(fn func() error) error {
	if err := e.Lock(); err != nil {
		return err
	}
	defer e.Unlock()
	return fn()
}
