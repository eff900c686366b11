package artifact

import (
	"sync/atomic"
)

// Registry holds the live artifact bundle for the serving process. It is
// constructed once at startup (loading eagerly, so a broken bundle fails the
// process before it serves anything) and handed to the predictor facades.
// Reads are lock-free; retraining swaps in a whole new bundle via Replace.
type Registry struct {
	dir    string
	bundle atomic.Pointer[Bundle]
}

// OpenRegistry loads the bundle from dir. A missing or corrupt artifact is
// returned as an error; the caller must not serve predictions in that case.
func OpenRegistry(dir string) (*Registry, error) {
	b, err := LoadBundle(dir)
	if err != nil {
		return nil, err
	}
	r := &Registry{dir: dir}
	r.bundle.Store(b)
	return r, nil
}

// NewRegistry wraps an already-built bundle, for tests and in-process
// retraining.
func NewRegistry(b *Bundle) *Registry {
	r := &Registry{}
	r.bundle.Store(b)
	return r
}

// Current returns the live bundle. The bundle is immutable; callers may hold
// the pointer across calls without locking.
func (r *Registry) Current() *Bundle { return r.bundle.Load() }

// Replace swaps in a fully built bundle. Requests in flight keep the bundle
// they already loaded.
func (r *Registry) Replace(b *Bundle) { r.bundle.Store(b) }

// Reload re-reads the bundle directory and swaps it in, leaving the current
// bundle live if the load fails.
func (r *Registry) Reload() error {
	b, err := LoadBundle(r.dir)
	if err != nil {
		return err
	}
	r.bundle.Store(b)
	return nil
}
