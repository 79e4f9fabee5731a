package engine

import (
	"sync"

	"go.uber.org/zap"
)

// Registry is the process-singleton slot for a single loaded Engine
// shared across the process, guarded by a mutex since Initialize may race
// with concurrent queries during a hot reload. Queries themselves remain
// lock-free once Get returns a snapshot.
//
// internal/api is written against the explicit-handle form (*Engine
// passed directly to each handler); Registry exists for hosts that
// genuinely want process-wide global state instead.
type Registry struct {
	mu     sync.RWMutex
	engine *Engine
}

// NewRegistry returns an empty registry with no engine loaded.
func NewRegistry() *Registry {
	return &Registry{}
}

// Initialize decodes data and, on success, swaps it in as the current
// engine. Matches the host API's initialize(bytes) -> bool.
func (r *Registry) Initialize(data []byte, log *zap.Logger) bool {
	e, ok := Initialize(data, log)
	if !ok {
		return false
	}
	r.Set(e)
	return true
}

// Set installs an already-constructed Engine as the current one.
func (r *Registry) Set(e *Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.engine = e
}

// Get returns the currently loaded engine, or nil if none has been set.
func (r *Registry) Get() *Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.engine
}
