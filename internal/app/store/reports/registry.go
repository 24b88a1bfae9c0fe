package reports

import "sync"

// Registry owns the session stores. Login creates a session's store (lazily,
// on first dashboard load), logout destroys it. Keeping the lifecycle here
// avoids any package-global mutable session state.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

// ForIdentity returns the store for the given identity ID, creating it if
// the session does not have one yet.
func (r *Registry) ForIdentity(identityID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[identityID]
	if !ok {
		s = NewStore()
		r.stores[identityID] = s
	}
	return s
}

// Drop discards the store for the given identity ID. Called on logout.
func (r *Registry) Drop(identityID string) {
	r.mu.Lock()
	delete(r.stores, identityID)
	r.mu.Unlock()
}
