package commands

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
)

const (
	dateLayout       = "2006-01-02"
	emptySection     = "(none)"
	truncationMarker = "\n... (truncated)"
	commitsHeading   = "Commits:"
	changesHeading   = "Change Requests:"
	unknownValue     = "unknown"
)

// ContextOptions controls which file details end up in the formatted context.
type ContextOptions struct {
	ExcludePaths  []string // doublestar globs matched against file paths
	MaxPatchBytes int      // 0 omits patches entirely
}

// FormatContext renders commits and change requests into the text block sent to
// the language model. It is pure: the same records always give the same text.
func FormatContext(
	commits []entities.CommitRecord,
	changeRequests []entities.ChangeRequestRecord,
	opts ContextOptions,
) string {
	var builder strings.Builder

	builder.WriteString(commitsHeading + "\n")
	if len(commits) == 0 {
		builder.WriteString(emptySection + "\n")
	}
	for _, commit := range commits {
		writeCommit(&builder, commit, opts)
	}

	builder.WriteString("\n" + changesHeading + "\n")
	if len(changeRequests) == 0 {
		builder.WriteString(emptySection + "\n")
	}
	for _, changeRequest := range changeRequests {
		writeChangeRequest(&builder, changeRequest, opts)
	}

	return builder.String()
}

// FilterFiles returns the files whose path matches none of the patterns.
// The input slice is left untouched.
func FilterFiles(files []entities.FileChange, patterns []string) []entities.FileChange {
	if len(patterns) == 0 {
		return files
	}

	kept := make([]entities.FileChange, 0, len(files))
	for _, file := range files {
		if isExcluded(file.Path, patterns) {
			continue
		}
		kept = append(kept, file)
	}
	return kept
}

// ValidateExcludePatterns reports the first malformed glob, if any.
func ValidateExcludePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: invalid exclude pattern %q", entities.ErrConfiguration, pattern)
		}
	}
	return nil
}

func writeCommit(builder *strings.Builder, commit entities.CommitRecord, opts ContextOptions) {
	files := FilterFiles(commit.Files, opts.ExcludePaths)

	fmt.Fprintf(builder, "- [%s] %s\n", shortIdentifier(commit), commit.Title())
	fmt.Fprintf(builder, "  Author: %s\n", authorLine(commit.AuthorName, commit.AuthorEmail))
	fmt.Fprintf(builder, "  Date: %s\n", formatDate(commit.Date))
	if body := commitBody(commit.Message); body != "" {
		fmt.Fprintf(builder, "  Message: %s\n", body)
	}
	fmt.Fprintf(builder, "  Files: %s\n", fileList(files))
	writePatches(builder, files, opts.MaxPatchBytes)
}

func writeChangeRequest(
	builder *strings.Builder,
	changeRequest entities.ChangeRequestRecord,
	opts ContextOptions,
) {
	files := FilterFiles(changeRequest.Files, opts.ExcludePaths)

	fmt.Fprintf(builder, "- [%s] %s\n", changeRequest.Reference(), strings.TrimSpace(changeRequest.Title))
	fmt.Fprintf(builder, "  Author: %s\n", authorLine(changeRequest.Author, ""))
	fmt.Fprintf(builder, "  Merged: %s\n", formatDate(changeRequest.MergedAt))
	if description := strings.TrimSpace(changeRequest.Description); description != "" {
		fmt.Fprintf(builder, "  Description: %s\n", indent(description))
	}
	fmt.Fprintf(builder, "  Files: %s\n", fileList(files))
	writePatches(builder, files, opts.MaxPatchBytes)
}

func writePatches(builder *strings.Builder, files []entities.FileChange, maxBytes int) {
	if maxBytes <= 0 {
		return
	}

	header := false
	for _, file := range files {
		if file.Patch == "" {
			continue
		}
		if !header {
			builder.WriteString("  Diff:\n")
			header = true
		}
		fmt.Fprintf(builder, "    --- %s\n", file.Path)
		for _, line := range strings.Split(truncatePatch(file.Patch, maxBytes), "\n") {
			builder.WriteString("    " + line + "\n")
		}
	}
}

func fileList(files []entities.FileChange) string {
	if len(files) == 0 {
		return emptySection
	}

	entries := make([]string, 0, len(files))
	for _, file := range files {
		entries = append(entries, fmt.Sprintf("%s (%s, +%d/-%d)", file.Path, file.Status, file.Additions, file.Deletions))
	}
	return strings.Join(entries, ", ")
}

// truncatePatch cuts the patch at maxBytes without splitting a UTF-8 rune.
func truncatePatch(patch string, maxBytes int) string {
	if len(patch) <= maxBytes {
		return strings.TrimRight(patch, "\n")
	}

	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(patch[cut]) {
		cut--
	}
	return strings.TrimRight(patch[:cut], "\n") + truncationMarker
}

func isExcluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			logger.Debugf("Ignoring malformed exclude pattern %q: %v", pattern, err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func shortIdentifier(commit entities.CommitRecord) string {
	if commit.ShortSHA != "" {
		return commit.ShortSHA
	}
	return entities.ShortenSHA(commit.SHA)
}

func authorLine(name, email string) string {
	if name == "" {
		name = unknownValue
	}
	if email == "" {
		return name
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

func formatDate(date time.Time) string {
	if date.IsZero() {
		return unknownValue
	}
	return date.UTC().Format(dateLayout)
}

// commitBody returns the message lines after the title, indented under the entry.
func commitBody(message string) string {
	_, body, found := strings.Cut(strings.TrimSpace(message), "\n")
	if !found {
		return ""
	}
	return indent(strings.TrimSpace(body))
}

func indent(text string) string {
	return strings.ReplaceAll(text, "\n", "\n    ")
}
