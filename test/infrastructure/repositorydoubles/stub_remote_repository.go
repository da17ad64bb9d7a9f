//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

// StubRemoteRepository answers with a fixed origin and branch.
type StubRemoteRepository struct {
	URL       string
	OriginErr error
	Branch    string
	BranchErr error
}

var _ repositories.RemoteRepository = (*StubRemoteRepository)(nil)

func (r *StubRemoteRepository) OriginURL(_ string) (string, error) {
	return r.URL, r.OriginErr
}

func (r *StubRemoteRepository) CurrentBranch(_ string) (string, error) {
	return r.Branch, r.BranchErr
}
