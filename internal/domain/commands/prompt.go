package commands

import (
	"fmt"
	"strings"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
)

const releaseNotesInstruction = `Analyze these Git commits and merged change requests to generate professional release notes.
Focus on:
- Code changes in diffs
- File modifications (added/modified/removed/renamed)
- Commit message patterns
- Merged pull/merge requests (if available)
- Impact analysis of changes

Structure (follow exactly these sections, each heading in bold):
1. Overview
2. Technical Breakdown
   ### New Features (if any)
   ### Improvements (if any)
   ### Bug Fixes (if any)
   ### Other (if any)
3. Notable Code Modifications (categorized points)
4. Files Changed (markdown table):
   | File | Changes | Status | Additions | Deletions |
   |------|---------|--------|-----------|-----------|

Output markdown with technical depth and highlight significant code changes.
Never mention AI generation in any form.`

// BuildPrompt joins the fixed release-note instruction with the formatted
// context. The release label is included when a version is configured.
func BuildPrompt(ref entities.RepositoryRef, contextText string, releaseVersion string) string {
	var builder strings.Builder

	builder.WriteString(releaseNotesInstruction)
	builder.WriteString("\n\n")
	fmt.Fprintf(&builder, "Repository: %s\n", ref.ProjectPath())
	if ref.Branch != "" {
		fmt.Fprintf(&builder, "Branch: %s\n", ref.Branch)
	}
	if releaseVersion != "" {
		fmt.Fprintf(&builder, "Release: %s (use it as the document title)\n", releaseVersion)
	}
	builder.WriteString("\nChanges to analyze:\n\n")
	builder.WriteString(contextText)

	return builder.String()
}
