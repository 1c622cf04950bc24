// Named locks under a shared directory.
//
// A Registry turns resource names into Exclusive locks whose marker files
// live in one directory. Each name gets a single Exclusive per Registry,
// created on first use and kept for the Registry's lifetime, so goroutines
// acquiring the same name queue on the same mutex. Processes, or separate
// Registries, that point at the same directory with the same hash
// algorithm exclude each other through the marker files.
package advlock

import (
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Config holds registry configuration options.
type Config struct {
	Dir           string       // Directory holding the marker files
	HashAlgorithm int          // 1=xxHash3 (default), 2=FNV1a, 3=Blake2b
	Logger        *slog.Logger // Defaults to slog.Default()
}

// Registry hands out exclusive locks by name. It is safe for concurrent use.
type Registry struct {
	config Config
	mu     sync.Mutex
	locks  map[string]*Exclusive // name -> lock
}

// NewRegistry validates config, fills in defaults and returns a Registry.
// The directory is created lazily by the first Acquire.
func NewRegistry(config Config) (*Registry, error) {
	if config.Dir == "" {
		return nil, ErrNoDir
	}
	if config.HashAlgorithm == 0 {
		config.HashAlgorithm = AlgXXHash3
	}
	if _, err := hashName("", config.HashAlgorithm); err != nil {
		return nil, err
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Registry{
		config: config,
		locks:  make(map[string]*Exclusive),
	}, nil
}

// Path returns the resource path name resolves to. The marker file is
// Path(name) + MarkerSuffix.
func (r *Registry) Path(name string) string {
	// The algorithm was validated by NewRegistry.
	id, _ := hashName(name, r.config.HashAlgorithm)
	return filepath.Join(r.config.Dir, id)
}

// lock returns the Exclusive for name, creating it on first use.
func (r *Registry) lock(name string) *Exclusive {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.locks[name]; ok {
		return e
	}
	e := NewExclusive(r.Path(name), WithLogger(r.config.Logger.With("name", name)))
	r.locks[name] = e
	return e
}

// Acquire blocks until the lock for name is held by the caller, both within
// this process and across processes. Release the returned Handle when done.
func (r *Registry) Acquire(name string) (*Handle, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	e := r.lock(name)
	if err := e.Lock(); err != nil {
		return nil, err
	}
	return &Handle{name: name, lock: e}, nil
}

// Release releases h. It is a no-op for a nil or already released Handle.
func (r *Registry) Release(h *Handle) {
	h.Release()
}

// Handle is a held registry lock.
type Handle struct {
	name     string
	lock     *Exclusive
	released atomic.Bool
}

// Name returns the resource name the handle was acquired for.
func (h *Handle) Name() string { return h.name }

// MarkerPath returns the marker file holding the OS lock.
func (h *Handle) MarkerPath() string { return h.lock.MarkerPath() }

// Release gives the lock back. Only the first call has any effect.
func (h *Handle) Release() {
	if h == nil || !h.released.CompareAndSwap(false, true) {
		return
	}
	h.lock.Unlock()
}
