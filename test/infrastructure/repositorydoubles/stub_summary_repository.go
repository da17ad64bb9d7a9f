//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

// SpySummaryRepository records what would have been printed to the console.
type SpySummaryRepository struct {
	Commits        []entities.CommitRecord
	ChangeRequests []entities.ChangeRequestRecord
	Context        string
	Document       string
}

var _ repositories.SummaryRepository = (*SpySummaryRepository)(nil)

func (s *SpySummaryRepository) PrintCommits(commits []entities.CommitRecord) {
	s.Commits = commits
}

func (s *SpySummaryRepository) PrintChangeRequests(changeRequests []entities.ChangeRequestRecord) {
	s.ChangeRequests = changeRequests
}

func (s *SpySummaryRepository) PrintContext(_ entities.RepositoryRef, context string) {
	s.Context = context
}

func (s *SpySummaryRepository) PrintDocument(_ entities.RepositoryRef, document string) {
	s.Document = document
}
