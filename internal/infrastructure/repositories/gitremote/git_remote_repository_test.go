//go:build unit

package gitremote_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/infrastructure/repositories/gitremote"
)

func initRepository(t *testing.T, branch string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644))
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("README.md")
	require.NoError(t, err)
	_, err = worktree.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Jane Doe", Email: "jane@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	if branch != "" {
		require.NoError(t, worktree.Checkout(&git.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName(branch),
			Create: true,
		}))
	}
	return dir
}

func TestGitRemoteRepository(t *testing.T) {
	t.Parallel()

	t.Run("should return the origin URL", func(t *testing.T) {
		t.Parallel()

		// given
		dir := initRepository(t, "")
		repo, err := git.PlainOpen(dir)
		require.NoError(t, err)
		_, err = repo.CreateRemote(&config.RemoteConfig{
			Name: "origin",
			URLs: []string{"git@gitlab.com:team/app.git"},
		})
		require.NoError(t, err)

		// when
		url, err := gitremote.NewGitRemoteRepository().OriginURL(dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "git@gitlab.com:team/app.git", url)
	})

	t.Run("should fail with a configuration error without an origin remote", func(t *testing.T) {
		t.Parallel()

		// given
		dir := initRepository(t, "")

		// when
		_, err := gitremote.NewGitRemoteRepository().OriginURL(dir)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfiguration)
	})

	t.Run("should return the checked out branch", func(t *testing.T) {
		t.Parallel()

		// given
		dir := initRepository(t, "release/1.2")

		// when
		branch, err := gitremote.NewGitRemoteRepository().CurrentBranch(dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "release/1.2", branch)
	})

	t.Run("should fail with a configuration error outside a repository", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()

		// when
		_, err := gitremote.NewGitRemoteRepository().CurrentBranch(dir)

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConfiguration)
	})
}
