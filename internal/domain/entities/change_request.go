package entities

import (
	"fmt"
	"time"
)

// ChangeRequestRecord is a merged GitHub pull request or GitLab merge request.
type ChangeRequestRecord struct {
	ID          int
	Provider    Provider
	Title       string
	Author      string
	MergedAt    time.Time
	Description string
	Files       []FileChange
}

// Reference renders the identifier the way the hosting service does:
// "#42" for pull requests, "!42" for merge requests.
func (c ChangeRequestRecord) Reference() string {
	if c.Provider == ProviderGitLab {
		return fmt.Sprintf("!%d", c.ID)
	}
	return fmt.Sprintf("#%d", c.ID)
}

// IsMerged reports whether the request carries a merge timestamp.
func (c ChangeRequestRecord) IsMerged() bool {
	return !c.MergedAt.IsZero()
}

// WithFiles returns a copy of the change request carrying the given files.
func (c ChangeRequestRecord) WithFiles(files []FileChange) ChangeRequestRecord {
	c.Files = files
	return c
}
