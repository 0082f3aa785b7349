package providers

import (
	"fmt"
	"sort"
	"sync"
)

// AdaptorFactory is a function that creates a new Adaptor instance.
type AdaptorFactory func() Adaptor

// Registry maintains a thread-safe registry of family adaptors.
type Registry struct {
	mu        sync.RWMutex
	factories map[Family]AdaptorFactory
}

// globalRegistry is the default global adaptor registry.
var globalRegistry = NewRegistry()

// NewRegistry creates a new adaptor registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Family]AdaptorFactory),
	}
}

// Register registers an adaptor factory for the given family.
// The factory function will be called each time GetAdaptor is invoked.
func (r *Registry) Register(family Family, factory AdaptorFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[family] = factory
}

// Get retrieves the factory for a registered family.
func (r *Registry) Get(family Family) (AdaptorFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, exists := r.factories[family]
	return factory, exists
}

// List returns the registered families in sorted order.
func (r *Registry) List() []Family {
	r.mu.RLock()
	defer r.mu.RUnlock()

	families := make([]Family, 0, len(r.factories))
	for family := range r.factories {
		families = append(families, family)
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })
	return families
}

// GetAdaptor creates a new Adaptor instance for the given family.
func (r *Registry) GetAdaptor(family Family) (Adaptor, error) {
	factory, exists := r.Get(family)
	if !exists {
		return nil, fmt.Errorf("no adaptor registered for family %q", family)
	}
	return factory(), nil
}

// GetAdaptor creates a new Adaptor instance from the global registry.
func GetAdaptor(family Family) (Adaptor, error) {
	return globalRegistry.GetAdaptor(family)
}

// Register registers an adaptor factory with the global registry.
func Register(family Family, factory AdaptorFactory) {
	globalRegistry.Register(family, factory)
}

// List returns the families registered in the global registry.
func List() []Family {
	return globalRegistry.List()
}

// DefaultRegistry returns the global registry.
func DefaultRegistry() *Registry {
	return globalRegistry
}
