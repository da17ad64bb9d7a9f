package gitlab

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

const (
	providerName   = "gitlab"
	perPage        = 100
	defaultBaseURL = "https://gitlab.com"
)

// GitLabProviderRepository implements repositories.ProviderRepository for
// gitlab.com and self-managed GitLab instances.
type GitLabProviderRepository struct {
	client *gl.Client
}

// NewGitLabProviderRepository creates a new GitLab provider for the given host
// and token. The client never retries failed requests.
func NewGitLabProviderRepository(opts repositories.ProviderOptions) (repositories.ProviderRepository, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	clientOpts := []gl.ClientOptionFunc{
		gl.WithBaseURL(baseURL),
		gl.WithoutRetries(),
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, gl.WithHTTPClient(opts.HTTPClient))
	}

	client, err := gl.NewClient(opts.Token, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GitLab client for %q: %w", entities.ErrConfiguration, baseURL, err)
	}
	return &GitLabProviderRepository{client: client}, nil
}

func (p *GitLabProviderRepository) Name() string { return providerName }

func (p *GitLabProviderRepository) DefaultBranch(ctx context.Context, ref entities.RepositoryRef) (string, error) {
	project, _, err := p.client.Projects.GetProject(ref.ProjectPath(), nil, gl.WithContext(ctx))
	if err != nil {
		return "", classifyError(fmt.Sprintf("project %s", ref.ProjectPath()), err)
	}
	if project.DefaultBranch == "" {
		return "", fmt.Errorf("%w: project %s has no default branch", entities.ErrNotFound, ref.ProjectPath())
	}
	return project.DefaultBranch, nil
}

// ListCommits returns the most recent commits on ref.Branch, newest first.
func (p *GitLabProviderRepository) ListCommits(
	ctx context.Context,
	ref entities.RepositoryRef,
	limit int,
) ([]entities.CommitRecord, error) {
	opts := &gl.ListCommitsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		RefName:     gl.Ptr(ref.Branch),
	}

	var commits []entities.CommitRecord
	for len(commits) < limit {
		page, resp, err := p.client.Commits.ListCommits(ref.ProjectPath(), opts, gl.WithContext(ctx))
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

// GetCommitDetail returns the files of a single commit. GitLab does not report
// line counts, so they are counted from the diff.
func (p *GitLabProviderRepository) GetCommitDetail(
	ctx context.Context,
	ref entities.RepositoryRef,
	sha string,
) ([]entities.FileChange, error) {
	opts := &gl.GetCommitDiffOptions{ListOptions: gl.ListOptions{PerPage: perPage}}

	var files []entities.FileChange
	for {
		diffs, resp, err := p.client.Commits.GetCommitDiff(ref.ProjectPath(), sha, opts, gl.WithContext(ctx))
		if err != nil {
			return nil, classifyError(fmt.Sprintf("commit %s", entities.ShortenSHA(sha)), err)
		}

		for _, diff := range diffs {
			files = append(files, toFileChange(diff))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

// ListMergedChangeRequests returns merged merge requests targeting ref.Branch,
// most recently merged first.
func (p *GitLabProviderRepository) ListMergedChangeRequests(
	ctx context.Context,
	ref entities.RepositoryRef,
	limit int,
) ([]entities.ChangeRequestRecord, error) {
	opts := &gl.ListProjectMergeRequestsOptions{
		ListOptions:  gl.ListOptions{PerPage: perPage},
		State:        gl.Ptr("merged"),
		TargetBranch: gl.Ptr(ref.Branch),
		OrderBy:      gl.Ptr("updated_at"),
		Sort:         gl.Ptr("desc"),
	}

	mergeRequests, _, err := p.client.MergeRequests.ListProjectMergeRequests(
		ref.ProjectPath(), opts, gl.WithContext(ctx),
	)
	if err != nil {
		return nil, classifyError(fmt.Sprintf("merge requests of %s", ref), err)
	}

	merged := make([]entities.ChangeRequestRecord, 0, len(mergeRequests))
	for _, mr := range mergeRequests {
		if mr.MergedAt == nil {
			continue
		}
		author := ""
		if mr.Author != nil {
			author = mr.Author.Username
		}
		merged = append(merged, entities.ChangeRequestRecord{
			ID:          int(mr.IID),
			Provider:    entities.ProviderGitLab,
			Title:       mr.Title,
			Author:      author,
			MergedAt:    *mr.MergedAt,
			Description: mr.Description,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].MergedAt.After(merged[j].MergedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// GetChangeRequestFiles returns every file of a merge request from the
// paginated diffs endpoint.
func (p *GitLabProviderRepository) GetChangeRequestFiles(
	ctx context.Context,
	ref entities.RepositoryRef,
	id int,
) ([]entities.FileChange, error) {
	opts := &gl.ListMergeRequestDiffsOptions{ListOptions: gl.ListOptions{PerPage: perPage}}

	var files []entities.FileChange
	for {
		diffs, resp, err := p.client.MergeRequests.ListMergeRequestDiffs(
			ref.ProjectPath(), int64(id), opts, gl.WithContext(ctx),
		)
		if err != nil {
			return nil, classifyError(fmt.Sprintf("files of merge request !%d", id), err)
		}

		for _, diff := range diffs {
			files = append(files, toFileChange(&gl.Diff{
				OldPath:     diff.OldPath,
				NewPath:     diff.NewPath,
				Diff:        diff.Diff,
				NewFile:     diff.NewFile,
				RenamedFile: diff.RenamedFile,
				DeletedFile: diff.DeletedFile,
			}))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

func toCommitRecord(commit *gl.Commit) entities.CommitRecord {
	var date time.Time
	switch {
	case commit.AuthoredDate != nil:
		date = *commit.AuthoredDate
	case commit.CommittedDate != nil:
		date = *commit.CommittedDate
	}

	return entities.CommitRecord{
		SHA:         commit.ID,
		ShortSHA:    entities.ShortenSHA(commit.ID),
		Message:     commit.Message,
		AuthorName:  commit.AuthorName,
		AuthorEmail: commit.AuthorEmail,
		Date:        date,
	}
}

func toFileChange(diff *gl.Diff) entities.FileChange {
	status := entities.FileModified
	switch {
	case diff.NewFile:
		status = entities.FileAdded
	case diff.DeletedFile:
		status = entities.FileRemoved
	case diff.RenamedFile:
		status = entities.FileRenamed
	}

	change := entities.FileChange{
		Path:   diff.NewPath,
		Status: status,
		Patch:  diff.Diff,
	}
	if diff.RenamedFile {
		change.PreviousPath = diff.OldPath
	}
	change.Additions, change.Deletions = countDiffLines(diff.Diff)
	return change
}

// countDiffLines counts added and removed lines of a unified diff body.
func countDiffLines(diff string) (int, int) {
	additions, deletions := 0, 0

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			continue
		case strings.HasPrefix(line, "+"):
			additions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
	}
	return additions, deletions
}

// classifyError maps client-go failures onto the error kinds of a run.
func classifyError(subject string, err error) error {
	var responseErr *gl.ErrorResponse

	switch {
	case errors.Is(err, gl.ErrNotFound):
		return fmt.Errorf("%w: failed to fetch %s: %w", entities.ErrNotFound, subject, err)
	case errors.As(err, &responseErr) && responseErr.Response != nil:
		kind := entities.ErrorForStatus(responseErr.Response.StatusCode)
		return fmt.Errorf("%w: failed to fetch %s: %w", kind, subject, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("failed to fetch %s: %w", subject, err)
	default:
		logger.Debugf("GitLab request for %s failed without a response: %v", subject, err)
		return fmt.Errorf("%w: failed to fetch %s: %w", entities.ErrTransientNetwork, subject, err)
	}
}
