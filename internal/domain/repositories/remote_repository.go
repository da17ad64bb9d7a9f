package repositories

// RemoteRepository inspects a local clone to find where it was cloned from.
type RemoteRepository interface {
	// OriginURL returns the URL of the "origin" remote of the repository at path.
	OriginURL(path string) (string, error)

	// CurrentBranch returns the branch checked out at path.
	CurrentBranch(path string) (string, error)
}
