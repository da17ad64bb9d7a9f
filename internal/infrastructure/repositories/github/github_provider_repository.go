package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100
	// pull requests are listed by update time, so a few extra pages may be needed
	// to collect enough merged ones when many were closed without merging
	maxPullRequestPages = 5
)

// GitHubProviderRepository implements repositories.ProviderRepository for GitHub
// and GitHub Enterprise.
type GitHubProviderRepository struct {
	client *gh.Client
}

// NewGitHubProviderRepository creates a new GitHub provider for the given API
// endpoint and token. An empty BaseURL targets api.github.com.
func NewGitHubProviderRepository(opts repositories.ProviderOptions) (repositories.ProviderRepository, error) {
	client := gh.NewClient(opts.HTTPClient).WithAuthToken(opts.Token)

	if opts.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: invalid GitHub API URL %q: %w", entities.ErrConfiguration, opts.BaseURL, err)
		}
		client.BaseURL = baseURL
	}

	return &GitHubProviderRepository{client: client}, nil
}

func (p *GitHubProviderRepository) Name() string { return providerName }

func (p *GitHubProviderRepository) DefaultBranch(ctx context.Context, ref entities.RepositoryRef) (string, error) {
	repo, _, err := p.client.Repositories.Get(ctx, ref.Owner, ref.Identifier)
	if err != nil {
		return "", classifyError(fmt.Sprintf("repository %s", ref.ProjectPath()), err)
	}
	if repo.GetDefaultBranch() == "" {
		return "", fmt.Errorf("%w: repository %s has no default branch", entities.ErrNotFound, ref.ProjectPath())
	}
	return repo.GetDefaultBranch(), nil
}

// ListCommits returns the most recent commits on ref.Branch, newest first.
func (p *GitHubProviderRepository) ListCommits(
	ctx context.Context,
	ref entities.RepositoryRef,
	limit int,
) ([]entities.CommitRecord, error) {
	opts := &gh.CommitsListOptions{
		SHA:         ref.Branch,
		ListOptions: gh.ListOptions{PerPage: min(limit, perPage)},
	}

	var commits []entities.CommitRecord
	for len(commits) < limit {
		page, resp, err := p.client.Repositories.ListCommits(ctx, ref.Owner, ref.Identifier, opts)
		if err != nil {
			return nil, classifyError(fmt.Sprintf("commits of %s", ref), err)
		}

		for _, commit := range page {
			commits = append(commits, toCommitRecord(commit))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if len(commits) > limit {
		commits = commits[:limit]
	}
	return commits, nil
}

// GetCommitDetail returns the files of a single commit. GitHub omits the patch
// of binary and very large files.
func (p *GitHubProviderRepository) GetCommitDetail(
	ctx context.Context,
	ref entities.RepositoryRef,
	sha string,
) ([]entities.FileChange, error) {
	commit, _, err := p.client.Repositories.GetCommit(ctx, ref.Owner, ref.Identifier, sha, nil)
	if err != nil {
		return nil, classifyError(fmt.Sprintf("commit %s", entities.ShortenSHA(sha)), err)
	}

	files := make([]entities.FileChange, 0, len(commit.Files))
	for _, file := range commit.Files {
		files = append(files, toFileChange(file))
	}
	return files, nil
}

// ListMergedChangeRequests returns merged pull requests targeting ref.Branch,
// most recently merged first.
func (p *GitHubProviderRepository) ListMergedChangeRequests(
	ctx context.Context,
	ref entities.RepositoryRef,
	limit int,
) ([]entities.ChangeRequestRecord, error) {
	opts := &gh.PullRequestListOptions{
		State:       "closed",
		Base:        ref.Branch,
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	var merged []entities.ChangeRequestRecord
	for pageCount := 0; len(merged) < limit; pageCount++ {
		if pageCount == maxPullRequestPages {
			logger.Debugf("Stopped scanning closed pull requests of %s after %d pages with %d of %d merged ones",
				ref, maxPullRequestPages, len(merged), limit)
			break
		}

		page, resp, err := p.client.PullRequests.List(ctx, ref.Owner, ref.Identifier, opts)
		if err != nil {
			return nil, classifyError(fmt.Sprintf("pull requests of %s", ref), err)
		}

		for _, pull := range page {
			if pull.MergedAt == nil {
				continue
			}
			merged = append(merged, toChangeRequestRecord(pull))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].MergedAt.After(merged[j].MergedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// GetChangeRequestFiles returns every file of a pull request.
func (p *GitHubProviderRepository) GetChangeRequestFiles(
	ctx context.Context,
	ref entities.RepositoryRef,
	id int,
) ([]entities.FileChange, error) {
	opts := &gh.ListOptions{PerPage: perPage}

	var files []entities.FileChange
	for {
		page, resp, err := p.client.PullRequests.ListFiles(ctx, ref.Owner, ref.Identifier, id, opts)
		if err != nil {
			return nil, classifyError(fmt.Sprintf("files of pull request #%d", id), err)
		}

		for _, file := range page {
			files = append(files, toFileChange(file))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

func toCommitRecord(commit *gh.RepositoryCommit) entities.CommitRecord {
	detail := commit.GetCommit()
	author := detail.GetAuthor()

	name := author.GetName()
	if name == "" {
		name = commit.GetAuthor().GetLogin()
	}

	return entities.CommitRecord{
		SHA:         commit.GetSHA(),
		ShortSHA:    entities.ShortenSHA(commit.GetSHA()),
		Message:     detail.GetMessage(),
		AuthorName:  name,
		AuthorEmail: author.GetEmail(),
		Date:        author.GetDate().Time,
	}
}

func toChangeRequestRecord(pull *gh.PullRequest) entities.ChangeRequestRecord {
	return entities.ChangeRequestRecord{
		ID:          pull.GetNumber(),
		Provider:    entities.ProviderGitHub,
		Title:       pull.GetTitle(),
		Author:      pull.GetUser().GetLogin(),
		MergedAt:    pull.GetMergedAt().Time,
		Description: pull.GetBody(),
	}
}

func toFileChange(file *gh.CommitFile) entities.FileChange {
	return entities.FileChange{
		Path:         file.GetFilename(),
		PreviousPath: file.GetPreviousFilename(),
		Status:       entities.NormalizeFileStatus(file.GetStatus()),
		Additions:    file.GetAdditions(),
		Deletions:    file.GetDeletions(),
		Patch:        file.GetPatch(),
	}
}

// classifyError maps go-github failures onto the error kinds of a run.
func classifyError(subject string, err error) error {
	var rateLimitErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	var responseErr *gh.ErrorResponse

	switch {
	case errors.As(err, &rateLimitErr), errors.As(err, &abuseErr):
		return fmt.Errorf("%w: GitHub rate limit reached while fetching %s: %w", entities.ErrTransientNetwork, subject, err)
	case errors.As(err, &responseErr) && responseErr.Response != nil:
		kind := entities.ErrorForStatus(responseErr.Response.StatusCode)
		return fmt.Errorf("%w: failed to fetch %s: %w", kind, subject, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("failed to fetch %s: %w", subject, err)
	default:
		logger.Debugf("GitHub request for %s failed without a response: %v", subject, err)
		return fmt.Errorf("%w: failed to fetch %s: %w", entities.ErrTransientNetwork, subject, err)
	}
}
