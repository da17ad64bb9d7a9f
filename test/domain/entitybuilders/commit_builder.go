//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
)

//nolint:gochecknoglobals // fixed reference date for builders
var defaultCommitDate = time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC)

// CommitBuilder helps create test commits with a fluent interface.
type CommitBuilder struct {
	*testkit.BaseBuilder
	sha         string
	message     string
	authorName  string
	authorEmail string
	date        time.Time
	files       []entities.FileChange
}

// NewCommitBuilder creates a new commit builder with sensible defaults.
func NewCommitBuilder() *CommitBuilder {
	return &CommitBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		sha:         "0123456789abcdef0123456789abcdef01234567",
		message:     "Initial commit",
		authorName:  "Jane Doe",
		authorEmail: "jane@example.com",
		date:        defaultCommitDate,
	}
}

// WithSHA sets the commit hash.
func (b *CommitBuilder) WithSHA(sha string) *CommitBuilder {
	b.sha = sha
	return b
}

// WithMessage sets the commit message.
func (b *CommitBuilder) WithMessage(message string) *CommitBuilder {
	b.message = message
	return b
}

// WithAuthor sets the author name and email.
func (b *CommitBuilder) WithAuthor(name, email string) *CommitBuilder {
	b.authorName = name
	b.authorEmail = email
	return b
}

// WithDate sets the commit date.
func (b *CommitBuilder) WithDate(date time.Time) *CommitBuilder {
	b.date = date
	return b
}

// WithFiles sets the changed files.
func (b *CommitBuilder) WithFiles(files ...entities.FileChange) *CommitBuilder {
	b.files = files
	return b
}

// Build creates the commit (satisfies testkit.Builder interface).
func (b *CommitBuilder) Build() interface{} {
	return b.BuildCommit()
}

// BuildCommit creates the commit with a concrete return type.
func (b *CommitBuilder) BuildCommit() entities.CommitRecord {
	return entities.CommitRecord{
		SHA:         b.sha,
		ShortSHA:    entities.ShortenSHA(b.sha),
		Message:     b.message,
		AuthorName:  b.authorName,
		AuthorEmail: b.authorEmail,
		Date:        b.date,
		Files:       b.files,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *CommitBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.sha = "0123456789abcdef0123456789abcdef01234567"
	b.message = "Initial commit"
	b.authorName = "Jane Doe"
	b.authorEmail = "jane@example.com"
	b.date = defaultCommitDate
	b.files = nil
	return b
}

// Clone creates a deep copy of the CommitBuilder.
func (b *CommitBuilder) Clone() testkit.Builder {
	return &CommitBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		sha:         b.sha,
		message:     b.message,
		authorName:  b.authorName,
		authorEmail: b.authorEmail,
		date:        b.date,
		files:       append([]entities.FileChange(nil), b.files...),
	}
}
