// SPDX-License-Identifier: MIT

package spec

import (
	"fmt"
	"sync"
)

// Registry holds registered specs by name and remembers registration order.
// Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]*Spec
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]*Spec)}
}

// Register adds a spec under its name. Registering the same name twice is a
// configuration error.
func (r *Registry) Register(s *Spec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[s.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSpec, s.Name())
	}
	r.specs[s.Name()] = s
	r.order = append(r.order, s.Name())
	return nil
}

// MustRegister is Register for static registration at startup; it panics on
// configuration errors.
func (r *Registry) MustRegister(s *Spec) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (*Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpec, name)
	}
	return s, nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
