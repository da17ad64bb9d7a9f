package entities

import (
	"strings"
	"time"
)

const shortSHALength = 7

// CommitRecord is a commit on the target branch together with its changed files.
type CommitRecord struct {
	SHA         string
	ShortSHA    string
	Message     string
	AuthorName  string
	AuthorEmail string
	Date        time.Time
	Files       []FileChange
}

// Title returns the first line of the commit message.
func (c CommitRecord) Title() string {
	title, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return strings.TrimSpace(title)
}

// WithFiles returns a copy of the commit carrying the given files.
func (c CommitRecord) WithFiles(files []FileChange) CommitRecord {
	c.Files = files
	return c
}

// ShortenSHA returns the abbreviated form of a commit hash.
func ShortenSHA(sha string) string {
	if len(sha) > shortSHALength {
		return sha[:shortSHALength]
	}
	return sha
}
