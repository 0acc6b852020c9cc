package adapters

import (
	"strings"

	"github.com/mietwerklabs/mietwerk/internal/payment/domain"
)

// Registry maps provider names to adapter factories.
type Registry struct {
	factories map[string]domain.Factory
}

func NewRegistry(factories ...domain.Factory) *Registry {
	r := &Registry{factories: make(map[string]domain.Factory, len(factories))}
	for _, f := range factories {
		r.factories[strings.ToLower(f.Provider())] = f
	}
	return r
}

func (r *Registry) ProviderExists(provider string) bool {
	_, ok := r.factories[strings.ToLower(provider)]
	return ok
}

func (r *Registry) NewAdapter(provider string, cfg domain.AdapterConfig) (domain.Adapter, error) {
	factory, ok := r.factories[strings.ToLower(provider)]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	return factory.NewAdapter(cfg)
}
