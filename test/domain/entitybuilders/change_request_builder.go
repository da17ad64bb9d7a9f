//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
)

// ChangeRequestBuilder helps create merged pull/merge requests for tests.
type ChangeRequestBuilder struct {
	*testkit.BaseBuilder
	id          int
	provider    entities.Provider
	title       string
	author      string
	mergedAt    time.Time
	description string
	files       []entities.FileChange
}

// NewChangeRequestBuilder creates a new builder for a merged GitHub pull request.
func NewChangeRequestBuilder() *ChangeRequestBuilder {
	return &ChangeRequestBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		id:          1,
		provider:    entities.ProviderGitHub,
		title:       "Test change",
		author:      "octocat",
		mergedAt:    defaultCommitDate,
	}
}

// WithID sets the pull/merge request number.
func (b *ChangeRequestBuilder) WithID(id int) *ChangeRequestBuilder {
	b.id = id
	return b
}

// WithProvider sets the hosting provider.
func (b *ChangeRequestBuilder) WithProvider(provider entities.Provider) *ChangeRequestBuilder {
	b.provider = provider
	return b
}

// WithTitle sets the title.
func (b *ChangeRequestBuilder) WithTitle(title string) *ChangeRequestBuilder {
	b.title = title
	return b
}

// WithAuthor sets the author username.
func (b *ChangeRequestBuilder) WithAuthor(author string) *ChangeRequestBuilder {
	b.author = author
	return b
}

// WithMergedAt sets the merge timestamp. A zero time marks it unmerged.
func (b *ChangeRequestBuilder) WithMergedAt(mergedAt time.Time) *ChangeRequestBuilder {
	b.mergedAt = mergedAt
	return b
}

// WithDescription sets the description body.
func (b *ChangeRequestBuilder) WithDescription(description string) *ChangeRequestBuilder {
	b.description = description
	return b
}

// WithFiles sets the changed files.
func (b *ChangeRequestBuilder) WithFiles(files ...entities.FileChange) *ChangeRequestBuilder {
	b.files = files
	return b
}

// Build creates the change request (satisfies testkit.Builder interface).
func (b *ChangeRequestBuilder) Build() interface{} {
	return b.BuildChangeRequest()
}

// BuildChangeRequest creates the change request with a concrete return type.
func (b *ChangeRequestBuilder) BuildChangeRequest() entities.ChangeRequestRecord {
	return entities.ChangeRequestRecord{
		ID:          b.id,
		Provider:    b.provider,
		Title:       b.title,
		Author:      b.author,
		MergedAt:    b.mergedAt,
		Description: b.description,
		Files:       b.files,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *ChangeRequestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.id = 1
	b.provider = entities.ProviderGitHub
	b.title = "Test change"
	b.author = "octocat"
	b.mergedAt = defaultCommitDate
	b.description = ""
	b.files = nil
	return b
}

// Clone creates a deep copy of the ChangeRequestBuilder.
func (b *ChangeRequestBuilder) Clone() testkit.Builder {
	return &ChangeRequestBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:          b.id,
		provider:    b.provider,
		title:       b.title,
		author:      b.author,
		mergedAt:    b.mergedAt,
		description: b.description,
		files:       append([]entities.FileChange(nil), b.files...),
	}
}
