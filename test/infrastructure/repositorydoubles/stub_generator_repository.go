//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

// StubGeneratorRepository returns a fixed document and records the prompts it received.
type StubGeneratorRepository struct {
	GeneratorName string
	Document      string
	GenerateErr   error
	Prompts       []string
}

var _ repositories.GeneratorRepository = (*StubGeneratorRepository)(nil)

func (g *StubGeneratorRepository) Name() string {
	if g.GeneratorName == "" {
		return "stub"
	}
	return g.GeneratorName
}

func (g *StubGeneratorRepository) Generate(_ context.Context, prompt string) (string, error) {
	g.Prompts = append(g.Prompts, prompt)
	if g.GenerateErr != nil {
		return "", g.GenerateErr
	}
	return g.Document, nil
}
