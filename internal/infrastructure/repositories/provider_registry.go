package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	domainRepos "github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

// ProviderFactory is a constructor function that creates a ProviderRepository
// for a resolved API endpoint and credential.
type ProviderFactory func(opts domainRepos.ProviderOptions) (domainRepos.ProviderRepository, error)

// ProviderRegistry manages all registered Git provider implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "github").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name.
func (r *ProviderRegistry) Get(
	name string,
	opts domainRepos.ProviderOptions,
) (domainRepos.ProviderRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider type: %q", entities.ErrConfiguration, name)
	}

	provider, err := factory(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", name, err)
	}
	return provider, nil
}

// Names returns the sorted list of registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
