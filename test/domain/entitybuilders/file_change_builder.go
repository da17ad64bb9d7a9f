//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
)

// FileChangeBuilder helps create changed files for tests.
type FileChangeBuilder struct {
	*testkit.BaseBuilder
	path      string
	status    entities.FileStatus
	additions int
	deletions int
	patch     string
}

// NewFileChangeBuilder creates a new builder for a modified file.
func NewFileChangeBuilder() *FileChangeBuilder {
	return &FileChangeBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "main.go",
		status:      entities.FileModified,
		additions:   1,
		deletions:   1,
	}
}

// WithPath sets the file path.
func (b *FileChangeBuilder) WithPath(path string) *FileChangeBuilder {
	b.path = path
	return b
}

// WithStatus sets the change status.
func (b *FileChangeBuilder) WithStatus(status entities.FileStatus) *FileChangeBuilder {
	b.status = status
	return b
}

// WithLines sets the added and deleted line counts.
func (b *FileChangeBuilder) WithLines(additions, deletions int) *FileChangeBuilder {
	b.additions = additions
	b.deletions = deletions
	return b
}

// WithPatch sets the unified diff of the file.
func (b *FileChangeBuilder) WithPatch(patch string) *FileChangeBuilder {
	b.patch = patch
	return b
}

// Build creates the file change (satisfies testkit.Builder interface).
func (b *FileChangeBuilder) Build() interface{} {
	return b.BuildFileChange()
}

// BuildFileChange creates the file change with a concrete return type.
func (b *FileChangeBuilder) BuildFileChange() entities.FileChange {
	return entities.FileChange{
		Path:      b.path,
		Status:    b.status,
		Additions: b.additions,
		Deletions: b.deletions,
		Patch:     b.patch,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *FileChangeBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "main.go"
	b.status = entities.FileModified
	b.additions = 1
	b.deletions = 1
	b.patch = ""
	return b
}

// Clone creates a deep copy of the FileChangeBuilder.
func (b *FileChangeBuilder) Clone() testkit.Builder {
	return &FileChangeBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:        b.path,
		status:      b.status,
		additions:   b.additions,
		deletions:   b.deletions,
		patch:       b.patch,
	}
}
