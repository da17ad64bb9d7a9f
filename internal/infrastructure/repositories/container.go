package repositories

import (
	"go.uber.org/dig"

	consoleRepo "github.com/rios0rios0/releasenotes/internal/infrastructure/repositories/console"
	fsRepo "github.com/rios0rios0/releasenotes/internal/infrastructure/repositories/filesystem"
	geminiRepo "github.com/rios0rios0/releasenotes/internal/infrastructure/repositories/gemini"
	gitRepo "github.com/rios0rios0/releasenotes/internal/infrastructure/repositories/gitremote"
	ghRepo "github.com/rios0rios0/releasenotes/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/releasenotes/internal/infrastructure/repositories/gitlab"
	openaiRepo "github.com/rios0rios0/releasenotes/internal/infrastructure/repositories/openai"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all hosting service factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewGitHubProviderRepository)
		reg.Register("gitlab", glRepo.NewGitLabProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register generator registry with all LLM backends
	if err := container.Provide(func() *GeneratorRegistry {
		reg := NewGeneratorRegistry()
		reg.Register("gemini", geminiRepo.NewGeminiGeneratorRepository)
		reg.Register("openai", openaiRepo.NewOpenAIGeneratorRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(fsRepo.NewFileOutputRepository); err != nil {
		return err
	}
	if err := container.Provide(consoleRepo.NewConsoleSummaryRepository); err != nil {
		return err
	}
	if err := container.Provide(gitRepo.NewGitRemoteRepository); err != nil {
		return err
	}

	return nil
}
