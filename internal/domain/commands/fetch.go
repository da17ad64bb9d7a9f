package commands

import (
	"context"
	"fmt"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

// FetchCommits lists up to maxCount commits on ref.Branch and fills in the
// changed files of each one with a detail request. A non-positive maxCount
// returns an empty result without contacting the provider.
func FetchCommits(
	ctx context.Context,
	provider repositories.ProviderRepository,
	ref entities.RepositoryRef,
	maxCount int,
) ([]entities.CommitRecord, error) {
	if maxCount <= 0 {
		return []entities.CommitRecord{}, nil
	}

	listed, err := provider.ListCommits(ctx, ref, maxCount)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits on %s: %w", ref, err)
	}
	if len(listed) > maxCount {
		listed = listed[:maxCount]
	}

	commits := make([]entities.CommitRecord, 0, len(listed))
	for _, commit := range listed {
		logger.Debugf("Fetching details of commit %s", commit.ShortSHA)
		files, detailErr := provider.GetCommitDetail(ctx, ref, commit.SHA)
		if detailErr != nil {
			return nil, fmt.Errorf("failed to get details of commit %s: %w", commit.ShortSHA, detailErr)
		}
		commits = append(commits, commit.WithFiles(files))
	}

	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Date.After(commits[j].Date)
	})

	logger.Infof("Fetched %d commit(s) from %s", len(commits), ref)
	return commits, nil
}

// FetchChangeRequests lists up to maxCount merged pull/merge requests that
// target ref.Branch, most recently merged first, and fills in their changed
// files. Records without a merge timestamp are dropped.
func FetchChangeRequests(
	ctx context.Context,
	provider repositories.ProviderRepository,
	ref entities.RepositoryRef,
	maxCount int,
) ([]entities.ChangeRequestRecord, error) {
	if maxCount <= 0 {
		return []entities.ChangeRequestRecord{}, nil
	}

	listed, err := provider.ListMergedChangeRequests(ctx, ref, maxCount)
	if err != nil {
		return nil, fmt.Errorf("failed to list merged change requests on %s: %w", ref, err)
	}

	merged := make([]entities.ChangeRequestRecord, 0, len(listed))
	for _, changeRequest := range listed {
		if !changeRequest.IsMerged() {
			logger.Debugf("Skipping %s: no merge timestamp", changeRequest.Reference())
			continue
		}
		merged = append(merged, changeRequest)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].MergedAt.After(merged[j].MergedAt)
	})
	if len(merged) > maxCount {
		merged = merged[:maxCount]
	}

	changeRequests := make([]entities.ChangeRequestRecord, 0, len(merged))
	for _, changeRequest := range merged {
		logger.Debugf("Fetching files of %s", changeRequest.Reference())
		files, filesErr := provider.GetChangeRequestFiles(ctx, ref, changeRequest.ID)
		if filesErr != nil {
			return nil, fmt.Errorf("failed to get files of %s: %w", changeRequest.Reference(), filesErr)
		}
		changeRequests = append(changeRequests, changeRequest.WithFiles(files))
	}

	logger.Infof("Fetched %d merged change request(s) from %s", len(changeRequests), ref)
	return changeRequests, nil
}
