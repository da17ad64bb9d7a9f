//go:build unit

package repositories_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	domainRepos "github.com/rios0rios0/releasenotes/internal/domain/repositories"
	"github.com/rios0rios0/releasenotes/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/releasenotes/test/infrastructure/repositorydoubles"
)

func TestProviderRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should register and retrieve a provider by name", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewProviderRegistry()
		var received domainRepos.ProviderOptions
		reg.Register("github", func(opts domainRepos.ProviderOptions) (domainRepos.ProviderRepository, error) {
			received = opts
			return &doubles.SpyProviderRepository{ProviderName: "github"}, nil
		})

		// when
		provider, err := reg.Get("github", domainRepos.ProviderOptions{Token: "fake-token"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "github", provider.Name())
		assert.Equal(t, "fake-token", received.Token)
	})

	t.Run("should return a configuration error for an unknown provider", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewProviderRegistry()

		// when
		provider, err := reg.Get("bitbucket", domainRepos.ProviderOptions{})

		// then
		require.Error(t, err)
		assert.Nil(t, provider)
		assert.ErrorIs(t, err, entities.ErrConfiguration)
		assert.Contains(t, err.Error(), "unknown provider type")
	})

	t.Run("should wrap factory failures", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewProviderRegistry()
		reg.Register("gitlab", func(_ domainRepos.ProviderOptions) (domainRepos.ProviderRepository, error) {
			return nil, errors.New("bad base URL")
		})

		// when
		_, err := reg.Get("gitlab", domainRepos.ProviderOptions{})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create gitlab provider")
	})

	t.Run("should list registered provider names sorted", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewProviderRegistry()
		factory := func(_ domainRepos.ProviderOptions) (domainRepos.ProviderRepository, error) {
			return &doubles.SpyProviderRepository{}, nil
		}
		reg.Register("gitlab", factory)
		reg.Register("github", factory)

		// when
		names := reg.Names()

		// then
		assert.Equal(t, []string{"github", "gitlab"}, names)
	})
}

func TestGeneratorRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should build the generator selected by the settings", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewGeneratorRegistry()
		reg.Register("openai", func(
			_ context.Context, settings entities.LLMSettings, _ *http.Client,
		) (domainRepos.GeneratorRepository, error) {
			return &doubles.StubGeneratorRepository{GeneratorName: settings.Provider}, nil
		})

		// when
		generator, err := reg.Get(context.Background(), entities.LLMSettings{Provider: "openai"}, http.DefaultClient)

		// then
		require.NoError(t, err)
		assert.Equal(t, "openai", generator.Name())
	})

	t.Run("should return a configuration error for an unknown backend", func(t *testing.T) {
		t.Parallel()

		// given
		reg := repositories.NewGeneratorRegistry()

		// when
		_, err := reg.Get(context.Background(), entities.LLMSettings{Provider: "claude"}, http.DefaultClient)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfiguration)
	})
}
