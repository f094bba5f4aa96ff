// Package backend maps backend names to factories, letting configuration
// choose the gateway implementation without reflection.
package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/paybridge/paybridge/internal/domain/pay"
)

// Factory builds a ready-to-use backend instance.
type Factory func() (pay.System, error)

type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a backend name to its factory. Re-registering a name is a
// configuration error.
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return &pay.Error{
			Kind:    pay.KindConfiguration,
			Op:      "backend.Register",
			Message: fmt.Sprintf("backend %q already registered", name),
		}
	}
	r.factories[name] = factory
	return nil
}

// New builds the backend registered under name.
func (r *Registry) New(name string) (pay.System, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &pay.Error{
			Kind:    pay.KindConfiguration,
			Op:      "backend.New",
			Message: fmt.Sprintf("backend %q not registered", name),
		}
	}
	return factory()
}

// Names lists the registered backend names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
