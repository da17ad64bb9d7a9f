package commands

import (
	"regexp"
)

var (
	overviewPattern     = regexp.MustCompile(`(?im)^\s*(#+|\*\*|\d+\.)?\s*\**\s*overview`)
	filesChangedPattern = regexp.MustCompile(`(?i)\|\s*file\s*\|\s*changes\s*\|\s*status\s*\|\s*additions\s*\|\s*deletions\s*\|`)
)

// ValidateDocument lists the expected sections missing from a generated
// document. The document itself is never modified.
func ValidateDocument(document string) []string {
	var missing []string
	if !overviewPattern.MatchString(document) {
		missing = append(missing, "Overview section")
	}
	if !filesChangedPattern.MatchString(document) {
		missing = append(missing, "Files Changed table")
	}
	return missing
}
