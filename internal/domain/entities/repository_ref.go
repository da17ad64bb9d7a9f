package entities

import (
	"fmt"
	"net/url"
)

// Provider identifies the hosting service behind a repository URL.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderGitLab Provider = "gitlab"
)

func (p Provider) String() string { return string(p) }

// RepositoryRef is the resolved, immutable description of the repository a run
// targets. For GitHub, Owner is the account and Identifier the repository name.
// For GitLab, Owner is the full namespace path and Identifier the URL-encoded
// "namespace/project" path used as the project id.
type RepositoryRef struct {
	Provider   Provider
	APIBase    string
	Host       string
	Owner      string
	Identifier string
	Branch     string
}

// WithBranch returns a copy of the reference targeting the given branch.
func (r RepositoryRef) WithBranch(branch string) RepositoryRef {
	r.Branch = branch
	return r
}

// ProjectPath returns the unescaped "owner/name" path of the repository.
func (r RepositoryRef) ProjectPath() string {
	if r.Provider == ProviderGitLab {
		if path, err := url.PathUnescape(r.Identifier); err == nil {
			return path
		}
		return r.Identifier
	}
	return r.Owner + "/" + r.Identifier
}

func (r RepositoryRef) String() string {
	if r.Branch == "" {
		return fmt.Sprintf("%s:%s", r.Provider, r.ProjectPath())
	}
	return fmt.Sprintf("%s:%s@%s", r.Provider, r.ProjectPath(), r.Branch)
}
