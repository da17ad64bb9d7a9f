//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sync"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
// It is safe for concurrent use since both fetchers call it at the same time.
type SpyProviderRepository struct {
	mu sync.Mutex

	// --- identity ---
	ProviderName string

	// --- DefaultBranch ---
	Branch           string
	DefaultBranchErr error

	// --- ListCommits ---
	Commits        []entities.CommitRecord
	ListCommitsErr error
	CommitLimits   []int

	// --- GetCommitDetail ---
	CommitFiles     map[string][]entities.FileChange // sha -> files
	CommitDetailErr error
	DetailedSHAs    []string

	// --- ListMergedChangeRequests ---
	ChangeRequests        []entities.ChangeRequestRecord
	ListChangeRequestsErr error
	ChangeRequestLimits   []int

	// --- GetChangeRequestFiles ---
	ChangeRequestFiles    map[int][]entities.FileChange // id -> files
	ChangeRequestFilesErr error
	RequestedIDs          []int

	// spy: every reference received
	Refs []entities.RepositoryRef
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string { return p.ProviderName }

func (p *SpyProviderRepository) DefaultBranch(_ context.Context, ref entities.RepositoryRef) (string, error) {
	p.record(ref)
	return p.Branch, p.DefaultBranchErr
}

func (p *SpyProviderRepository) ListCommits(
	_ context.Context, ref entities.RepositoryRef, limit int,
) ([]entities.CommitRecord, error) {
	p.record(ref)
	p.mu.Lock()
	p.CommitLimits = append(p.CommitLimits, limit)
	p.mu.Unlock()
	if p.ListCommitsErr != nil {
		return nil, p.ListCommitsErr
	}
	return p.Commits, nil
}

func (p *SpyProviderRepository) GetCommitDetail(
	_ context.Context, ref entities.RepositoryRef, sha string,
) ([]entities.FileChange, error) {
	p.record(ref)
	p.mu.Lock()
	p.DetailedSHAs = append(p.DetailedSHAs, sha)
	p.mu.Unlock()
	if p.CommitDetailErr != nil {
		return nil, p.CommitDetailErr
	}
	return p.CommitFiles[sha], nil
}

func (p *SpyProviderRepository) ListMergedChangeRequests(
	_ context.Context, ref entities.RepositoryRef, limit int,
) ([]entities.ChangeRequestRecord, error) {
	p.record(ref)
	p.mu.Lock()
	p.ChangeRequestLimits = append(p.ChangeRequestLimits, limit)
	p.mu.Unlock()
	if p.ListChangeRequestsErr != nil {
		return nil, p.ListChangeRequestsErr
	}
	return p.ChangeRequests, nil
}

func (p *SpyProviderRepository) GetChangeRequestFiles(
	_ context.Context, ref entities.RepositoryRef, id int,
) ([]entities.FileChange, error) {
	p.record(ref)
	p.mu.Lock()
	p.RequestedIDs = append(p.RequestedIDs, id)
	p.mu.Unlock()
	if p.ChangeRequestFilesErr != nil {
		return nil, p.ChangeRequestFilesErr
	}
	files, ok := p.ChangeRequestFiles[id]
	if !ok && p.ChangeRequestFiles != nil {
		return nil, fmt.Errorf("%w: change request %d", entities.ErrNotFound, id)
	}
	return files, nil
}

// CallCount returns how many requests reached the spy.
func (p *SpyProviderRepository) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Refs)
}

func (p *SpyProviderRepository) record(ref entities.RepositoryRef) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Refs = append(p.Refs, ref)
}
