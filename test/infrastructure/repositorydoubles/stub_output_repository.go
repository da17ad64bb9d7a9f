//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

// SpyOutputRepository keeps written documents in memory instead of touching disk.
type SpyOutputRepository struct {
	WriteErr error
	Written  map[string]string // path -> document
}

var _ repositories.OutputRepository = (*SpyOutputRepository)(nil)

func (o *SpyOutputRepository) Write(_ context.Context, document string, path string) error {
	if o.WriteErr != nil {
		return o.WriteErr
	}
	if o.Written == nil {
		o.Written = make(map[string]string)
	}
	o.Written[path] = document
	return nil
}
