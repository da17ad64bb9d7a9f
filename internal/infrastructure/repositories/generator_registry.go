package repositories

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	domainRepos "github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

// GeneratorFactory builds a language model backend from the LLM settings.
type GeneratorFactory func(
	ctx context.Context,
	settings entities.LLMSettings,
	httpClient *http.Client,
) (domainRepos.GeneratorRepository, error)

// GeneratorRegistry manages all registered release-note generator backends.
type GeneratorRegistry struct {
	generators map[string]GeneratorFactory
}

// NewGeneratorRegistry creates an empty generator registry.
func NewGeneratorRegistry() *GeneratorRegistry {
	return &GeneratorRegistry{
		generators: make(map[string]GeneratorFactory),
	}
}

// Register adds a generator factory under the given name (e.g. "gemini").
func (r *GeneratorRegistry) Register(name string, factory GeneratorFactory) {
	r.generators[name] = factory
}

// Get returns a configured generator for settings.Provider.
func (r *GeneratorRegistry) Get(
	ctx context.Context,
	settings entities.LLMSettings,
	httpClient *http.Client,
) (domainRepos.GeneratorRepository, error) {
	factory, ok := r.generators[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: unknown LLM provider: %q", entities.ErrConfiguration, settings.Provider)
	}

	generator, err := factory(ctx, settings, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", settings.Provider, err)
	}
	return generator, nil
}

// Names returns the sorted list of registered generator names.
func (r *GeneratorRegistry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
