package repositories

import "context"

// OutputRepository persists the generated document.
type OutputRepository interface {
	// Write replaces the contents of path with document.
	Write(ctx context.Context, document string, path string) error
}
