package jit

import "sync"

// Registry is the specialization cache: it maps signatures to compiled
// specializations. The external compiler subsystem may supply its own;
// MemoryRegistry is the in-process default.
//
// A registry only grows. Nothing in the dispatcher evicts or replaces a
// registered specialization, so an exact-match lookup stays stable for
// the life of the process.
type Registry interface {
	// Lookup returns the specialization registered for sig, if any.
	Lookup(sig Signature) (Specialization, bool)
	// Register adds a specialization under its own signature. If one is
	// already registered for that signature, the first registration is
	// kept.
	Register(spec Specialization)
	// Signatures returns a snapshot of registered signatures in
	// registration order.
	Signatures() []Signature
}

// MemoryRegistry is a mutex-guarded, grow-only, in-process Registry with
// per-signature hit counters.
type MemoryRegistry struct {
	mu    sync.RWMutex
	specs map[string]Specialization
	hits  map[string]int
	order []Signature
}

// NewMemoryRegistry creates an empty MemoryRegistry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		specs: make(map[string]Specialization),
		hits:  make(map[string]int),
	}
}

// Lookup implements Registry. A hit increments the signature's counter.
func (r *MemoryRegistry) Lookup(sig Signature) (Specialization, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	spec, ok := r.specs[sig.Key()]
	if ok {
		r.hits[sig.Key()]++
	}
	return spec, ok
}

// Register implements Registry. Registering a signature twice keeps the
// first specialization, so concurrent redundant compilations cannot make
// the fast path flip between units.
func (r *MemoryRegistry) Register(spec Specialization) {
	sig := spec.Signature()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[sig.Key()]; exists {
		return
	}
	r.specs[sig.Key()] = spec
	r.order = append(r.order, sig)
}

// Signatures implements Registry.
func (r *MemoryRegistry) Signatures() []Signature {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Signature, len(r.order))
	copy(out, r.order)
	return out
}

// Hits returns how many lookups have matched sig since registration.
func (r *MemoryRegistry) Hits(sig Signature) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hits[sig.Key()]
}

// Len returns the number of registered specializations.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.specs)
}
