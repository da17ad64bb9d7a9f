package repositories

import (
	"context"
	"net/http"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
)

// ProviderRepository abstracts the read-only history API of a Git hosting service
// (GitHub, GitLab). One implementation is selected per run from the resolved
// repository reference.
type ProviderRepository interface {
	// Name returns the provider identifier (e.g. "github", "gitlab").
	Name() string

	// DefaultBranch returns the repository's default branch name.
	DefaultBranch(ctx context.Context, ref entities.RepositoryRef) (string, error)

	// ListCommits returns at most limit commits on ref.Branch, newest first,
	// without their changed files.
	ListCommits(ctx context.Context, ref entities.RepositoryRef, limit int) ([]entities.CommitRecord, error)

	// GetCommitDetail returns the files changed by a commit, with line counts and patches.
	GetCommitDetail(ctx context.Context, ref entities.RepositoryRef, sha string) ([]entities.FileChange, error)

	// ListMergedChangeRequests returns at most limit merged pull/merge requests
	// targeting ref.Branch, most recently merged first, without their files.
	ListMergedChangeRequests(
		ctx context.Context,
		ref entities.RepositoryRef,
		limit int,
	) ([]entities.ChangeRequestRecord, error)

	// GetChangeRequestFiles returns the files changed by a merged pull/merge request.
	GetChangeRequestFiles(ctx context.Context, ref entities.RepositoryRef, id int) ([]entities.FileChange, error)
}

// ProviderOptions carries what a provider implementation needs to talk to its API.
type ProviderOptions struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}
