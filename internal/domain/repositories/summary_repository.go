package repositories

import "github.com/rios0rios0/releasenotes/internal/domain/entities"

// SummaryRepository echoes what a run analysed and produced to the user.
type SummaryRepository interface {
	PrintCommits(commits []entities.CommitRecord)
	PrintChangeRequests(changeRequests []entities.ChangeRequestRecord)
	PrintContext(ref entities.RepositoryRef, context string)
	PrintDocument(ref entities.RepositoryRef, document string)
}
