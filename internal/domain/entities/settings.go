package entities

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/rios0rios0/releasenotes/config"
)

const (
	DefaultMaxCommits        = 5
	DefaultMaxChangeRequests = 5
	DefaultOutputFile        = "release_notes.md"
	DefaultMaxPatchBytes     = 2000
	DefaultHTTPTimeout       = 60 * time.Second
	DefaultLLMProvider       = "gemini"
)

// Settings is the fully resolved configuration of a single run.
type Settings struct {
	RepoURL           string
	RepoPath          string // local clone used when RepoURL is empty
	Branch            string // empty means the provider's default branch
	MaxCommits        int
	MaxChangeRequests int

	GitHubToken  string
	GitHubAPIURL string
	GitLabToken  string
	GitLabURL    string

	LLM LLMSettings

	OutputFile     string
	ExcludePaths   []string
	MaxPatchBytes  int
	ReleaseVersion string
	ValidateOutput bool
	HTTPTimeout    time.Duration
}

// LLMSettings selects and tunes the release-note generator.
type LLMSettings struct {
	Provider    string
	Model       string
	Temperature *float32
	APIKey      string
	BaseURL     string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		MaxCommits:        DefaultMaxCommits,
		MaxChangeRequests: DefaultMaxChangeRequests,
		OutputFile:        DefaultOutputFile,
		MaxPatchBytes:     DefaultMaxPatchBytes,
		HTTPTimeout:       DefaultHTTPTimeout,
		LLM:               LLMSettings{Provider: DefaultLLMProvider},
	}
}

// NewSettings layers defaults, the optional config file and the environment,
// in that order. configPath may be empty.
func NewSettings(configPath string) (*Settings, error) {
	settings := DefaultSettings()

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		settings.applyFile(cfg)
	}

	if err := settings.applyEnv(); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// TokenFor returns the credential configured for the provider.
func (s *Settings) TokenFor(provider Provider) string {
	switch provider {
	case ProviderGitHub:
		return s.GitHubToken
	case ProviderGitLab:
		return s.GitLabToken
	default:
		return ""
	}
}

// TokenEnvHint names the variables that can hold the provider credential.
func TokenEnvHint(provider Provider) string {
	switch provider {
	case ProviderGitHub:
		return "GITHUB_TOKEN or GH_TOKEN"
	case ProviderGitLab:
		return "GITLAB_TOKEN or GL_TOKEN"
	default:
		return "<unknown provider>"
	}
}

// APIBaseOverride returns the configured API endpoint for the provider, if any.
func (s *Settings) APIBaseOverride(provider Provider) string {
	switch provider {
	case ProviderGitHub:
		return s.GitHubAPIURL
	case ProviderGitLab:
		return s.GitLabURL
	default:
		return ""
	}
}

// Validate checks the settings that do not depend on the resolved provider.
func (s *Settings) Validate() error {
	if s.RepoURL == "" && s.RepoPath == "" {
		return fmt.Errorf("%w: REPO_URL is required (or REPO_PATH pointing at a local clone)", ErrConfiguration)
	}
	if s.MaxCommits < 0 {
		return fmt.Errorf("%w: MAX_COMMITS must not be negative", ErrConfiguration)
	}
	if s.MaxChangeRequests < 0 {
		return fmt.Errorf("%w: MAX_MERGE_REQUESTS must not be negative", ErrConfiguration)
	}
	if s.MaxPatchBytes < 0 {
		return fmt.Errorf("%w: MAX_PATCH_BYTES must not be negative", ErrConfiguration)
	}
	if s.OutputFile == "" {
		return fmt.Errorf("%w: OUTPUT_FILE must not be empty", ErrConfiguration)
	}
	if s.ReleaseVersion != "" && !semver.IsValid(normalizeVersion(s.ReleaseVersion)) {
		return fmt.Errorf("%w: RELEASE_VERSION %q is not a semantic version", ErrConfiguration, s.ReleaseVersion)
	}
	switch s.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("%w: LLM_PROVIDER must be gemini or openai, got %q", ErrConfiguration, s.LLM.Provider)
	}
	return nil
}

// CanonicalReleaseVersion returns the release version in "vMAJOR.MINOR.PATCH" form.
func (s *Settings) CanonicalReleaseVersion() string {
	if s.ReleaseVersion == "" {
		return ""
	}
	return semver.Canonical(normalizeVersion(s.ReleaseVersion))
}

func (s *Settings) applyFile(cfg *config.Config) {
	setString(&s.RepoURL, cfg.RepoURL)
	setString(&s.RepoPath, cfg.RepoPath)
	setString(&s.Branch, cfg.BranchName)
	if cfg.MaxCommits != nil {
		s.MaxCommits = *cfg.MaxCommits
	}
	if cfg.MaxMergeRequests != nil {
		s.MaxChangeRequests = *cfg.MaxMergeRequests
	}
	setString(&s.ReleaseVersion, cfg.ReleaseVersion)
	if cfg.HTTPTimeout != "" {
		if timeout, err := time.ParseDuration(cfg.HTTPTimeout); err == nil {
			s.HTTPTimeout = timeout
		}
	}

	setString(&s.GitHubToken, cfg.GitHub.Token)
	setString(&s.GitHubAPIURL, cfg.GitHub.APIURL)
	setString(&s.GitLabToken, cfg.GitLab.Token)
	setString(&s.GitLabURL, cfg.GitLab.APIURL)

	setString(&s.LLM.Provider, cfg.LLM.Provider)
	setString(&s.LLM.Model, cfg.LLM.Model)
	setString(&s.LLM.APIKey, cfg.LLM.APIKey)
	setString(&s.LLM.BaseURL, cfg.LLM.BaseURL)
	if cfg.LLM.Temperature != nil {
		s.LLM.Temperature = cfg.LLM.Temperature
	}

	setString(&s.OutputFile, cfg.Output.File)
	if len(cfg.Output.ExcludePaths) > 0 {
		s.ExcludePaths = cfg.Output.ExcludePaths
	}
	if cfg.Output.MaxPatchBytes != nil {
		s.MaxPatchBytes = *cfg.Output.MaxPatchBytes
	}
	s.ValidateOutput = s.ValidateOutput || cfg.Output.Validate
}

func (s *Settings) applyEnv() error {
	setString(&s.RepoURL, os.Getenv("REPO_URL"))
	setString(&s.RepoPath, os.Getenv("REPO_PATH"))
	setString(&s.Branch, os.Getenv("BRANCH_NAME"))
	setString(&s.ReleaseVersion, os.Getenv("RELEASE_VERSION"))
	setString(&s.OutputFile, os.Getenv("OUTPUT_FILE"))

	setString(&s.GitHubToken, firstEnv("GITHUB_TOKEN", "GH_TOKEN"))
	setString(&s.GitHubAPIURL, os.Getenv("GITHUB_API_URL"))
	setString(&s.GitLabToken, firstEnv("GITLAB_TOKEN", "GL_TOKEN"))
	setString(&s.GitLabURL, os.Getenv("GITLAB_URL"))

	setString(&s.LLM.Provider, strings.ToLower(os.Getenv("LLM_PROVIDER")))
	setString(&s.LLM.Model, os.Getenv("LLM_MODEL"))
	// each backend only reads its own credentials and endpoint
	switch s.LLM.Provider {
	case "openai":
		setString(&s.LLM.APIKey, os.Getenv("OPENAI_API_KEY"))
		setString(&s.LLM.BaseURL, os.Getenv("OPENAI_BASE_URL"))
	default:
		setString(&s.LLM.APIKey, firstEnv("GOOGLE_API_KEY", "GEMINI_API_KEY"))
	}

	if patterns := os.Getenv("EXCLUDE_PATHS"); patterns != "" {
		s.ExcludePaths = splitList(patterns)
	}

	if err := setIntFromEnv(&s.MaxCommits, "MAX_COMMITS"); err != nil {
		return err
	}
	if err := setIntFromEnv(&s.MaxChangeRequests, "MAX_MERGE_REQUESTS"); err != nil {
		return err
	}
	if err := setIntFromEnv(&s.MaxPatchBytes, "MAX_PATCH_BYTES"); err != nil {
		return err
	}

	if raw := os.Getenv("LLM_TEMPERATURE"); raw != "" {
		value, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return fmt.Errorf("%w: LLM_TEMPERATURE is not a number: %q", ErrConfiguration, raw)
		}
		temperature := float32(value)
		s.LLM.Temperature = &temperature
	}

	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%w: HTTP_TIMEOUT is not a duration: %q", ErrConfiguration, raw)
		}
		s.HTTPTimeout = timeout
	}

	if raw := os.Getenv("VALIDATE_OUTPUT"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: VALIDATE_OUTPUT is not a boolean: %q", ErrConfiguration, raw)
		}
		s.ValidateOutput = enabled
	}

	return nil
}

func setString(target *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*target = value
	}
}

func setIntFromEnv(target *int, key string) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: %s is not an integer: %q", ErrConfiguration, key, raw)
	}
	*target = value
	return nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
