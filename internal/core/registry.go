package core

import "sync"

// Registry maps logical identities to their live connection handles. It owns
// the identity->handle mapping exclusively; at most one handle is active per
// identity, a later Register superseding the earlier one.
type Registry struct {
	mu       sync.RWMutex
	byID     map[string]*Client
	byHandle map[*Client]Identity
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:     make(map[string]*Client),
		byHandle: make(map[*Client]Identity),
	}
}

// Register binds identity to handle, replacing any existing handle for the
// same identity. The superseded handle's reverse entry is dropped so that its
// later disconnect finds nothing to act on.
func (r *Registry) Register(id Identity, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byID[id.ID]; ok && old != c {
		delete(r.byHandle, old)
	}
	r.byID[id.ID] = c
	r.byHandle[c] = id
}

// Lookup returns the live handle for an identity.
func (r *Registry) Lookup(identityID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[identityID]
	return c, ok
}

// Unregister removes the mapping owned by handle and returns its identity.
// A handle that was never registered, or was already superseded by a newer
// Register for the same identity, yields found=false and no mutation.
func (r *Registry) Unregister(c *Client) (Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byHandle[c]
	if !ok {
		return Identity{}, false
	}
	delete(r.byHandle, c)
	delete(r.byID, id.ID)
	return id, true
}

// ClientsByKind snapshots the handles whose identity has the given kind.
func (r *Registry) ClientsByKind(kind Kind) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Client, 0, len(r.byHandle))
	for c, id := range r.byHandle {
		if id.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byHandle)
}
