package domain

//go:generate mockgen -source=source.go -destination=mock_offer_source.go -package=domain

import (
	"context"
	"sort"
	"sync"
)

// OfferSource supplies raw flight offers for a search.
// Implementations must honor context cancellation.
type OfferSource interface {
	// Name returns the unique identifier of the source
	Name() string

	// Search returns the offers matching the criteria
	Search(ctx context.Context, criteria SearchCriteria) ([]FlightOffer, error)
}

// SourceRegistry keeps offer sources by name. Registering a name twice replaces the first.
type SourceRegistry struct {
	mu      sync.RWMutex
	sources map[string]OfferSource
}

// NewSourceRegistry creates an empty registry.
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{sources: make(map[string]OfferSource)}
}

// Register adds a source. Nil sources are ignored.
func (r *SourceRegistry) Register(source OfferSource) {
	if source == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[source.Name()] = source
}

// Get returns the source with the given name, or nil.
func (r *SourceRegistry) Get(name string) OfferSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources[name]
}

// GetAll returns all sources ordered by name.
func (r *SourceRegistry) GetAll() []OfferSource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.namesLocked()
	result := make([]OfferSource, 0, len(names))
	for _, name := range names {
		result = append(result, r.sources[name])
	}
	return result
}

// Names returns the registered source names, sorted.
func (r *SourceRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *SourceRegistry) namesLocked() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
