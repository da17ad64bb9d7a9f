package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/releasenotes/internal/infrastructure/repositories"
)

// Generate is the interface for the release-notes pipeline.
type Generate interface {
	Execute(ctx context.Context, settings *entities.Settings, opts GenerateOptions) (*entities.ReleaseNote, error)
}

// GenerateOptions holds runtime options for a single run.
type GenerateOptions struct {
	DryRun  bool // stop after formatting and print the context instead of calling the model
	Verbose bool
}

// GenerateCommand orchestrates one run:
// resolve repository -> fetch commits and change requests -> format -> generate -> write.
type GenerateCommand struct {
	providerRegistry  *infraRepos.ProviderRegistry
	generatorRegistry *infraRepos.GeneratorRegistry
	outputRepository  repositories.OutputRepository
	summaryRepository repositories.SummaryRepository
	remoteRepository  repositories.RemoteRepository
}

// NewGenerateCommand creates a new GenerateCommand.
func NewGenerateCommand(
	providerRegistry *infraRepos.ProviderRegistry,
	generatorRegistry *infraRepos.GeneratorRegistry,
	outputRepository repositories.OutputRepository,
	summaryRepository repositories.SummaryRepository,
	remoteRepository repositories.RemoteRepository,
) *GenerateCommand {
	return &GenerateCommand{
		providerRegistry:  providerRegistry,
		generatorRegistry: generatorRegistry,
		outputRepository:  outputRepository,
		summaryRepository: summaryRepository,
		remoteRepository:  remoteRepository,
	}
}

// Execute runs the pipeline. Every failure is returned wrapped in an
// entities.StepError naming the step; nothing is retried. In dry-run mode the
// returned note is nil.
func (it *GenerateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts GenerateOptions,
) (*entities.ReleaseNote, error) {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	ref, err := it.resolve(settings)
	if err != nil {
		return nil, entities.NewStepError(entities.StepResolve, err)
	}

	httpClient := &http.Client{Timeout: settings.HTTPTimeout}

	provider, err := it.providerFor(ref, settings, httpClient)
	if err != nil {
		return nil, entities.NewStepError(entities.StepResolve, err)
	}

	if ref.Branch == "" {
		branch, branchErr := provider.DefaultBranch(ctx, ref)
		if branchErr != nil {
			return nil, entities.NewStepError(
				entities.StepResolve,
				fmt.Errorf("failed to get default branch: %w", branchErr),
			)
		}
		logger.Debugf("Using default branch %q", branch)
		ref = ref.WithBranch(branch)
	}

	logger.Infof("Analyzing %s repository %s on branch %s", ref.Provider, ref.ProjectPath(), ref.Branch)

	var generator repositories.GeneratorRepository
	if !opts.DryRun {
		generator, err = it.generatorRegistry.Get(ctx, settings.LLM, httpClient)
		if err != nil {
			return nil, entities.NewStepError(entities.StepGenerate, err)
		}
	}

	commits, changeRequests, err := fetchHistory(ctx, provider, ref, settings)
	if err != nil {
		return nil, err
	}

	it.summaryRepository.PrintCommits(commits)
	it.summaryRepository.PrintChangeRequests(changeRequests)

	contextText := FormatContext(commits, changeRequests, ContextOptions{
		ExcludePaths:  settings.ExcludePaths,
		MaxPatchBytes: settings.MaxPatchBytes,
	})

	if opts.DryRun {
		logger.Info("[DRY RUN] Skipping release-note generation")
		it.summaryRepository.PrintContext(ref, contextText)
		return nil, nil
	}

	logger.Infof("Generating release notes with %s", generator.Name())
	prompt := BuildPrompt(ref, contextText, settings.CanonicalReleaseVersion())
	document, err := generator.Generate(ctx, prompt)
	if err != nil {
		return nil, entities.NewStepError(entities.StepGenerate, err)
	}
	if strings.TrimSpace(document) == "" {
		return nil, entities.NewStepError(
			entities.StepGenerate,
			fmt.Errorf("%w: %s returned an empty document", entities.ErrGeneration, generator.Name()),
		)
	}

	if settings.ValidateOutput {
		for _, section := range ValidateDocument(document) {
			logger.Warnf("Generated release notes are missing the %s", section)
		}
	}

	if err = it.outputRepository.Write(ctx, document, settings.OutputFile); err != nil {
		return nil, entities.NewStepError(entities.StepWrite, err)
	}

	note := &entities.ReleaseNote{Repository: ref, Markdown: document}
	it.summaryRepository.PrintDocument(ref, document)
	return note, nil
}

// resolve turns the configured URL (or the origin of the local clone) into a
// repository reference. No network access happens here.
func (it *GenerateCommand) resolve(settings *entities.Settings) (entities.RepositoryRef, error) {
	repoURL := settings.RepoURL
	branch := settings.Branch

	if repoURL == "" && settings.RepoPath != "" {
		originURL, err := it.remoteRepository.OriginURL(settings.RepoPath)
		if err != nil {
			return entities.RepositoryRef{}, fmt.Errorf("%w: %w", entities.ErrConfiguration, err)
		}
		logger.Debugf("Detected origin %q from %s", originURL, settings.RepoPath)
		repoURL = originURL

		if branch == "" {
			if current, branchErr := it.remoteRepository.CurrentBranch(settings.RepoPath); branchErr == nil {
				branch = current
			} else {
				logger.Debugf("Could not detect the checked out branch: %v", branchErr)
			}
		}
	}

	ref, err := ResolveRepository(repoURL)
	if err != nil {
		return entities.RepositoryRef{}, err
	}
	if override := settings.APIBaseOverride(ref.Provider); override != "" {
		ref.APIBase = strings.TrimRight(override, "/")
	}

	if err = ValidateExcludePatterns(settings.ExcludePaths); err != nil {
		return entities.RepositoryRef{}, err
	}

	return ref.WithBranch(branch), nil
}

func (it *GenerateCommand) providerFor(
	ref entities.RepositoryRef,
	settings *entities.Settings,
	httpClient *http.Client,
) (repositories.ProviderRepository, error) {
	token := settings.TokenFor(ref.Provider)
	if token == "" {
		return nil, fmt.Errorf(
			"%w: %s is required for %s repositories",
			entities.ErrConfiguration, entities.TokenEnvHint(ref.Provider), ref.Provider,
		)
	}

	return it.providerRegistry.Get(ref.Provider.String(), repositories.ProviderOptions{
		BaseURL:    ref.APIBase,
		Token:      token,
		HTTPClient: httpClient,
	})
}

// fetchHistory runs both fetchers concurrently. The first failure cancels the other.
func fetchHistory(
	ctx context.Context,
	provider repositories.ProviderRepository,
	ref entities.RepositoryRef,
	settings *entities.Settings,
) ([]entities.CommitRecord, []entities.ChangeRequestRecord, error) {
	var (
		commits        []entities.CommitRecord
		changeRequests []entities.ChangeRequestRecord
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		commits, err = FetchCommits(groupCtx, provider, ref, settings.MaxCommits)
		return entities.NewStepError(entities.StepFetchCommits, err)
	})
	group.Go(func() error {
		var err error
		changeRequests, err = FetchChangeRequests(groupCtx, provider, ref, settings.MaxChangeRequests)
		return entities.NewStepError(entities.StepFetchChangeRequests, err)
	})

	if err := group.Wait(); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, nil, fmt.Errorf("run interrupted: %w", err)
		}
		return nil, nil, err
	}
	return commits, changeRequests, nil
}
