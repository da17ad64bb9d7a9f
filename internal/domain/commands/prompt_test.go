//go:build unit

package commands_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/releasenotes/internal/domain/commands"
	"github.com/rios0rios0/releasenotes/internal/domain/entities"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("should put the instruction first and the context last", func(t *testing.T) {
		t.Parallel()

		// given
		ref := githubRef()
		contextText := "Commits:\n- [aaa1112] Fix bug\n"

		// when
		prompt := commands.BuildPrompt(ref, contextText, "")

		// then
		assert.True(t, strings.HasSuffix(prompt, contextText))
		for _, expected := range []string{
			"Overview", "Technical Breakdown", "New Features", "Bug Fixes",
			"Notable Code Modifications", "| File | Changes | Status | Additions | Deletions |",
			"Never mention AI", "Repository: acme/widget", "Branch: main",
		} {
			assert.Contains(t, prompt, expected)
		}
		assert.NotContains(t, prompt, "Release:")
	})

	t.Run("should include the release version when configured", func(t *testing.T) {
		t.Parallel()

		// given
		ref := entities.RepositoryRef{Provider: entities.ProviderGitLab, Owner: "team", Identifier: "team%2Fapp"}

		// when
		prompt := commands.BuildPrompt(ref, "", "v1.4.0")

		// then
		assert.Contains(t, prompt, "Repository: team/app")
		assert.Contains(t, prompt, "Release: v1.4.0")
		assert.NotContains(t, prompt, "Branch:")
	})
}

func TestValidateDocument(t *testing.T) {
	t.Parallel()

	t.Run("should accept a document with both sections", func(t *testing.T) {
		t.Parallel()

		// given
		document := "# v1.0.0\n\n## Overview\nText\n\n## Files Changed\n" +
			"| File | Changes | Status | Additions | Deletions |\n|---|---|---|---|---|\n"

		// when
		missing := commands.ValidateDocument(document)

		// then
		assert.Empty(t, missing)
	})

	t.Run("should accept a bold numbered overview heading", func(t *testing.T) {
		t.Parallel()

		// given
		document := "1. **Overview**\nText\n| file | changes | status | additions | deletions |\n"

		// when
		missing := commands.ValidateDocument(document)

		// then
		assert.Empty(t, missing)
	})

	t.Run("should list every missing section", func(t *testing.T) {
		t.Parallel()

		// given
		document := "Some free text about the release."

		// when
		missing := commands.ValidateDocument(document)

		// then
		assert.Equal(t, []string{"Overview section", "Files Changed table"}, missing)
	})
}
