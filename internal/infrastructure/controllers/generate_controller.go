package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/releasenotes/config"
	"github.com/rios0rios0/releasenotes/internal/domain/commands"
	"github.com/rios0rios0/releasenotes/internal/domain/entities"
)

// GenerateController handles the root command: one release-notes run.
type GenerateController struct {
	command commands.Generate
}

var _ entities.Controller = (*GenerateController)(nil)

// NewGenerateController creates a new GenerateController.
func NewGenerateController(command commands.Generate) *GenerateController {
	return &GenerateController{command: command}
}

// GetBind returns the Cobra command metadata for the generate controller.
func (it *GenerateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "releasenotes",
		Short: "Generate release notes from recent commits and merged change requests",
		Long: `Fetch the most recent commits and merged pull/merge requests of a GitHub or
GitLab repository, summarize them with a language model and write the result
to a Markdown file.

The repository and credentials come from the environment (a .env file is
loaded when present) and, optionally, from a YAML config file:

  REPO_URL=https://github.com/acme/widget GITHUB_TOKEN=... GOOGLE_API_KEY=... releasenotes
  releasenotes --config .releasenotes.yaml --dry-run`,
	}
}

// AddFlags adds the generate flags to the given Cobra command.
func (it *GenerateController) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect .releasenotes.yaml)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Print the context that would be sent to the model and stop")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
}

// Execute loads the settings and runs the pipeline once.
func (it *GenerateController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, _ := cmd.Flags().GetString("config")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if configPath == "" {
		found, err := config.FindConfigFile()
		if err == nil {
			configPath = found
		}
	}
	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
	}

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	note, err := it.command.Execute(ctx, settings, commands.GenerateOptions{
		DryRun:  dryRun,
		Verbose: verbose,
	})
	if err != nil {
		return err
	}

	if note != nil {
		logger.Infof("Release notes for %s are ready", note.Repository)
	}
	return nil
}
