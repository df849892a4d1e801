package confirm

import (
	"net/http"
	"sync"
	"time"
)

// Registry hands out one Coordinator per session id.
type Registry struct {
	mu    sync.Mutex
	byID  map[string]*Coordinator
	ttl   time.Duration
	onNew func(sessionID string, c *Coordinator)
}

// NewRegistry returns a registry whose coordinators expire after ttl idle.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{byID: map[string]*Coordinator{}, ttl: ttl}
}

// OnCreate sets a hook run for every newly created coordinator.
func (r *Registry) OnCreate(fn func(sessionID string, c *Coordinator)) {
	r.mu.Lock()
	r.onNew = fn
	r.mu.Unlock()
}

// For returns the coordinator for sessionID, creating it on first use.
func (r *Registry) For(sessionID string) *Coordinator {
	r.mu.Lock()
	c, ok := r.byID[sessionID]
	if !ok {
		c = NewCoordinator()
		r.byID[sessionID] = c
	}
	hook := r.onNew
	r.mu.Unlock()

	if !ok && hook != nil {
		hook(sessionID, c)
	}
	if ok {
		c.touch()
	}
	return c
}

// Len returns the number of live coordinators.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// Sweep closes and drops coordinators idle since before now-ttl.
// It returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.ttl)
	var stale []*Coordinator

	r.mu.Lock()
	for id, c := range r.byID {
		if c.IdleSince().Before(cutoff) {
			stale = append(stale, c)
			delete(r.byID, id)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.Close()
	}
	return len(stale)
}

// Close rejects every pending request and empties the registry.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.byID
	r.byID = map[string]*Coordinator{}
	r.mu.Unlock()
	for _, c := range all {
		c.Close()
	}
}

// ActionFunc runs when a dialog naming it is answered.
type ActionFunc func(w http.ResponseWriter, r *http.Request, req Request, accepted bool)

// Actions maps Request.Action names to handlers registered by features.
type Actions struct {
	mu       sync.RWMutex
	handlers map[string]ActionFunc
}

// NewActions returns an empty action table.
func NewActions() *Actions {
	return &Actions{handlers: map[string]ActionFunc{}}
}

// Handle registers fn under name, replacing any earlier handler.
func (a *Actions) Handle(name string, fn ActionFunc) {
	a.mu.Lock()
	a.handlers[name] = fn
	a.mu.Unlock()
}

// Dispatch runs the handler for req.Action. It reports false when none is registered.
func (a *Actions) Dispatch(w http.ResponseWriter, r *http.Request, req Request, accepted bool) bool {
	a.mu.RLock()
	fn := a.handlers[req.Action]
	a.mu.RUnlock()
	if fn == nil {
		return false
	}
	fn(w, r, req, accepted)
	return true
}
