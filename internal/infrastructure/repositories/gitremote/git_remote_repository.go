package gitremote

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

const originRemote = "origin"

// GitRemoteRepository reads remote and branch information from a local clone.
type GitRemoteRepository struct{}

// NewGitRemoteRepository creates a new GitRemoteRepository.
func NewGitRemoteRepository() repositories.RemoteRepository {
	return &GitRemoteRepository{}
}

// OriginURL returns the first URL of the "origin" remote.
func (r *GitRemoteRepository) OriginURL(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(originRemote)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", fmt.Errorf("%w: repository at %s has no %q remote", entities.ErrConfiguration, path, originRemote)
		}
		return "", fmt.Errorf("failed to read remote %q: %w", originRemote, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: remote %q of %s has no URL", entities.ErrConfiguration, originRemote, path)
	}
	logger.Debugf("Remote %q of %s points at %s", originRemote, path, urls[0])
	return urls[0], nil
}

// CurrentBranch returns the short name of the checked out branch. A detached
// HEAD yields an empty string so that the provider's default branch is used.
func (r *GitRemoteRepository) CurrentBranch(path string) (string, error) {
	repo, err := open(path)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD of %s: %w", path, err)
	}
	if !head.Name().IsBranch() {
		logger.Debugf("HEAD of %s is detached, falling back to the default branch", path)
		return "", nil
	}
	return head.Name().Short(), nil
}

func open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open git repository at %s: %w", entities.ErrConfiguration, path, err)
	}
	return repo, nil
}
