package provider

import (
	"sort"
	"sync"
)

// Registry manages provider and catalog source plugins
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	catalogs  map[string]CatalogSource
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
		catalogs:  make(map[string]CatalogSource),
	}
}

// Register adds a provider to the registry
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// RegisterCatalog adds a catalog source to the registry
func (r *Registry) RegisterCatalog(c CatalogSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalogs[c.Name()] = c
}

// Get retrieves a provider by name
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Catalog retrieves a catalog source by name
func (r *Registry) Catalog(name string) (CatalogSource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.catalogs[name]
	return c, ok
}

// Names returns registered provider names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
