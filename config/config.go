package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the optional file-based configuration for releasenotes.
// Every value can be overridden by the matching environment variable.
type Config struct {
	RepoURL          string         `yaml:"repo_url"`
	RepoPath         string         `yaml:"repo_path"`
	BranchName       string         `yaml:"branch_name"`
	MaxCommits       *int           `yaml:"max_commits"`
	MaxMergeRequests *int           `yaml:"max_merge_requests"`
	ReleaseVersion   string         `yaml:"release_version"`
	HTTPTimeout      string         `yaml:"http_timeout"` // Go duration, e.g. "45s"
	GitHub           ProviderConfig `yaml:"github"`
	GitLab           ProviderConfig `yaml:"gitlab"`
	LLM              LLMConfig      `yaml:"llm"`
	Output           OutputConfig   `yaml:"output"`
}

// ProviderConfig holds credentials and endpoint overrides for a hosting provider.
type ProviderConfig struct {
	Token  string `yaml:"token"`   // Inline, ${ENV_VAR}, or file path
	APIURL string `yaml:"api_url"` // Empty means derived from the repository URL
}

// LLMConfig selects and tunes the language model backend.
type LLMConfig struct {
	Provider    string   `yaml:"provider"` // "gemini" or "openai"
	Model       string   `yaml:"model"`
	Temperature *float32 `yaml:"temperature"`
	APIKey      string   `yaml:"api_key"` // Inline, ${ENV_VAR}, or file path
	BaseURL     string   `yaml:"base_url"`
}

// OutputConfig controls what is sent to the model and where the result goes.
type OutputConfig struct {
	File          string   `yaml:"file"`
	ExcludePaths  []string `yaml:"exclude_paths"`
	MaxPatchBytes *int     `yaml:"max_patch_bytes"`
	Validate      bool     `yaml:"validate"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a configuration file, expanding environment variables
// and resolving token file paths.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.GitHub.Token = ResolveToken(cfg.GitHub.Token)
	cfg.GitLab.Token = ResolveToken(cfg.GitLab.Token)
	cfg.LLM.APIKey = ResolveToken(cfg.LLM.APIKey)

	if validateErr := Validate(&cfg); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".releasenotes.yaml",
		".releasenotes.yml",
		"releasenotes.yaml",
		"releasenotes.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if resolved == "" {
		return resolved
	}

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// Validate checks the values that can be verified without touching the network.
func Validate(cfg *Config) error {
	if cfg.MaxCommits != nil && *cfg.MaxCommits < 0 {
		return fmt.Errorf("max_commits must not be negative, got %d", *cfg.MaxCommits)
	}
	if cfg.MaxMergeRequests != nil && *cfg.MaxMergeRequests < 0 {
		return fmt.Errorf("max_merge_requests must not be negative, got %d", *cfg.MaxMergeRequests)
	}
	if cfg.Output.MaxPatchBytes != nil && *cfg.Output.MaxPatchBytes < 0 {
		return fmt.Errorf("output.max_patch_bytes must not be negative, got %d", *cfg.Output.MaxPatchBytes)
	}

	switch cfg.LLM.Provider {
	case "", "gemini", "openai":
	default:
		return fmt.Errorf("llm.provider must be one of gemini, openai; got %q", cfg.LLM.Provider)
	}

	if cfg.HTTPTimeout != "" {
		if _, err := time.ParseDuration(cfg.HTTPTimeout); err != nil {
			return fmt.Errorf("http_timeout is not a valid duration: %w", err)
		}
	}

	return nil
}
