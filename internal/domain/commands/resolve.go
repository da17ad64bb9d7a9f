package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
)

const (
	githubPublicHost   = "github.com"
	githubPublicAPI    = "https://api.github.com"
	githubEnterpriseV3 = "/api/v3"
	gitlabRouteMarker  = "-"
	minPathSegments    = 2 // owner + repository
)

// ResolveRepository classifies a repository URL as GitHub or GitLab and derives
// the API endpoint and identifiers used by the provider repositories. It never
// touches the network. Accepted forms: https://host/path, ssh://git@host/path,
// git@host:path and host/path, each with an optional ".git" suffix or trailing slash.
func ResolveRepository(rawURL string) (entities.RepositoryRef, error) {
	scheme, host, path, err := splitRepositoryURL(rawURL)
	if err != nil {
		return entities.RepositoryRef{}, err
	}

	provider, ok := classifyHost(host)
	if !ok {
		return entities.RepositoryRef{}, fmt.Errorf(
			"%w: unsupported git provider for %q (expected a GitHub or GitLab URL)",
			entities.ErrConfiguration, rawURL,
		)
	}

	segments := pathSegments(path)
	if len(segments) < minPathSegments {
		return entities.RepositoryRef{}, fmt.Errorf(
			"%w: cannot extract owner and repository from %q",
			entities.ErrConfiguration, rawURL,
		)
	}

	switch provider {
	case entities.ProviderGitHub:
		return entities.RepositoryRef{
			Provider:   provider,
			APIBase:    githubAPIBase(scheme, host),
			Host:       host,
			Owner:      segments[0],
			Identifier: segments[1],
		}, nil
	default:
		namespace := strings.Join(segments[:len(segments)-1], "/")
		project := segments[len(segments)-1]
		return entities.RepositoryRef{
			Provider:   provider,
			APIBase:    scheme + "://" + host,
			Host:       host,
			Owner:      namespace,
			Identifier: url.PathEscape(namespace + "/" + project),
		}, nil
	}
}

// splitRepositoryURL returns the web scheme, host and path of a repository URL.
// SSH forms are mapped to https since the REST APIs are only served over HTTP(S).
func splitRepositoryURL(rawURL string) (string, string, string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", "", "", fmt.Errorf("%w: repository URL is empty", entities.ErrConfiguration)
	}

	// scp-like syntax: git@host:owner/repo.git
	if !strings.Contains(trimmed, "://") && strings.Contains(trimmed, "@") {
		_, rest, _ := strings.Cut(trimmed, "@")
		host, path, ok := strings.Cut(rest, ":")
		if !ok || host == "" {
			return "", "", "", fmt.Errorf("%w: invalid SSH URL %q", entities.ErrConfiguration, rawURL)
		}
		return "https", strings.ToLower(host), path, nil
	}

	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: invalid repository URL %q: %w", entities.ErrConfiguration, rawURL, err)
	}
	if parsed.Host == "" {
		return "", "", "", fmt.Errorf("%w: repository URL %q has no host", entities.ErrConfiguration, rawURL)
	}

	scheme := parsed.Scheme
	if scheme != "http" {
		scheme = "https"
	}

	return scheme, strings.ToLower(parsed.Host), parsed.Path, nil
}

// classifyHost decides the provider from the hostname. Self-hosted instances are
// recognised when their hostname mentions the product (gitlab.example.com).
func classifyHost(host string) (entities.Provider, bool) {
	hostname := host
	if name, _, found := strings.Cut(host, ":"); found {
		hostname = name
	}

	switch {
	case strings.Contains(hostname, "github"):
		return entities.ProviderGitHub, true
	case strings.Contains(hostname, "gitlab"):
		return entities.ProviderGitLab, true
	default:
		return "", false
	}
}

// pathSegments strips slashes and the ".git" suffix and drops GitLab's "/-/"
// route suffix (e.g. /group/project/-/tree/main).
func pathSegments(path string) []string {
	cleaned := strings.Trim(path, "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")

	var segments []string
	for _, segment := range strings.Split(cleaned, "/") {
		if segment == gitlabRouteMarker {
			break
		}
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func githubAPIBase(scheme, host string) string {
	if host == githubPublicHost || host == "www."+githubPublicHost {
		return githubPublicAPI
	}
	return scheme + "://" + host + githubEnterpriseV3
}
