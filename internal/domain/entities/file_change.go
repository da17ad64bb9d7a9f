package entities

// FileStatus is the kind of change applied to a file.
type FileStatus string

const (
	FileAdded    FileStatus = "added"
	FileModified FileStatus = "modified"
	FileRemoved  FileStatus = "removed"
	FileRenamed  FileStatus = "renamed"
)

// FileChange describes one file touched by a commit or a change request.
type FileChange struct {
	Path         string
	PreviousPath string // set for renames only
	Status       FileStatus
	Additions    int
	Deletions    int
	Patch        string // may be empty or truncated by the provider
}

// Changes returns the total number of changed lines.
func (f FileChange) Changes() int {
	return f.Additions + f.Deletions
}

// NormalizeFileStatus maps provider status strings onto FileStatus.
// GitHub reports "copied" and "changed" which are treated as modifications,
// GitLab deletions arrive as "deleted".
func NormalizeFileStatus(raw string) FileStatus {
	switch raw {
	case "added", "new":
		return FileAdded
	case "removed", "deleted":
		return FileRemoved
	case "renamed":
		return FileRenamed
	default:
		return FileModified
	}
}
