//go:build unit

package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releasenotes/internal/domain/commands"
	"github.com/rios0rios0/releasenotes/internal/domain/entities"
)

func TestResolveRepository(t *testing.T) {
	t.Parallel()

	t.Run("should resolve GitHub URLs in every accepted form", func(t *testing.T) {
		t.Parallel()

		// given
		urls := []string{
			"https://github.com/acme/widget",
			"https://github.com/acme/widget/",
			"https://github.com/acme/widget.git",
			"github.com/acme/widget",
			"git@github.com:acme/widget.git",
			"ssh://git@github.com/acme/widget.git",
		}

		for _, rawURL := range urls {
			// when
			ref, err := commands.ResolveRepository(rawURL)

			// then
			require.NoError(t, err, rawURL)
			assert.Equal(t, entities.ProviderGitHub, ref.Provider, rawURL)
			assert.Equal(t, "acme", ref.Owner, rawURL)
			assert.Equal(t, "widget", ref.Identifier, rawURL)
			assert.Equal(t, "https://api.github.com", ref.APIBase, rawURL)
			assert.Empty(t, ref.Branch, rawURL)
		}
	})

	t.Run("should use the v3 API path for GitHub Enterprise hosts", func(t *testing.T) {
		t.Parallel()

		// given
		rawURL := "https://github.acme.io/platform/api"

		// when
		ref, err := commands.ResolveRepository(rawURL)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ProviderGitHub, ref.Provider)
		assert.Equal(t, "https://github.acme.io/api/v3", ref.APIBase)
		assert.Equal(t, "platform", ref.Owner)
		assert.Equal(t, "api", ref.Identifier)
	})

	t.Run("should URL-encode the GitLab namespace and project", func(t *testing.T) {
		t.Parallel()

		// given
		rawURL := "https://gitlab.com/group/subgroup/project"

		// when
		ref, err := commands.ResolveRepository(rawURL)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ProviderGitLab, ref.Provider)
		assert.Equal(t, "https://gitlab.com", ref.APIBase)
		assert.Equal(t, "group/subgroup", ref.Owner)
		assert.Equal(t, "group%2Fsubgroup%2Fproject", ref.Identifier)
		assert.Equal(t, "group/subgroup/project", ref.ProjectPath())
	})

	t.Run("should drop GitLab route suffixes and the .git extension", func(t *testing.T) {
		t.Parallel()

		// given
		urls := map[string]string{
			"https://gitlab.com/team/app/-/tree/main": "team%2Fapp",
			"git@gitlab.com:team/app.git":             "team%2Fapp",
			"https://gitlab.example.com/ops/infra/":    "ops%2Finfra",
		}

		for rawURL, expected := range urls {
			// when
			ref, err := commands.ResolveRepository(rawURL)

			// then
			require.NoError(t, err, rawURL)
			assert.Equal(t, entities.ProviderGitLab, ref.Provider, rawURL)
			assert.Equal(t, expected, ref.Identifier, rawURL)
		}
	})

	t.Run("should keep the host of self-hosted GitLab as the API base", func(t *testing.T) {
		t.Parallel()

		// given
		rawURL := "https://gitlab.example.com/ops/infra"

		// when
		ref, err := commands.ResolveRepository(rawURL)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://gitlab.example.com", ref.APIBase)
		assert.Equal(t, "gitlab.example.com", ref.Host)
	})

	t.Run("should fail with a configuration error for unknown hosts", func(t *testing.T) {
		t.Parallel()

		// given
		urls := []string{
			"https://bitbucket.org/acme/widget",
			"example.com",
			"",
		}

		for _, rawURL := range urls {
			// when
			_, err := commands.ResolveRepository(rawURL)

			// then
			require.Error(t, err, rawURL)
			assert.ErrorIs(t, err, entities.ErrConfiguration, rawURL)
		}
	})

	t.Run("should fail when the repository name is missing", func(t *testing.T) {
		t.Parallel()

		// given
		rawURL := "https://github.com/acme"

		// when
		_, err := commands.ResolveRepository(rawURL)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfiguration)
		assert.Contains(t, err.Error(), "owner and repository")
	})
}

func TestClassifyHost(t *testing.T) {
	t.Parallel()

	t.Run("should ignore the port when classifying", func(t *testing.T) {
		t.Parallel()

		// given
		host := "gitlab.internal:8443"

		// when
		provider, ok := commands.ClassifyHost(host)

		// then
		assert.True(t, ok)
		assert.Equal(t, entities.ProviderGitLab, provider)
	})
}
