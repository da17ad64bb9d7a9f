package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

const outputFileMode = 0o644

// FileOutputRepository writes release notes to the local filesystem.
type FileOutputRepository struct{}

// NewFileOutputRepository creates a new FileOutputRepository.
func NewFileOutputRepository() repositories.OutputRepository {
	return &FileOutputRepository{}
}

// Write truncates or creates path and writes the document to it. Parent
// directories are not created.
func (r *FileOutputRepository) Write(_ context.Context, document string, path string) error {
	if err := os.WriteFile(path, []byte(document), outputFileMode); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", entities.ErrPersistence, path, err)
	}

	absolute, err := filepath.Abs(path)
	if err != nil {
		absolute = path
	}
	logger.Infof("Release notes written to %s (%d bytes)", absolute, len(document))
	return nil
}
