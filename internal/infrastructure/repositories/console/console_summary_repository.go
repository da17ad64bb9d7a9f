package console

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/rios0rios0/releasenotes/internal/domain/entities"
	"github.com/rios0rios0/releasenotes/internal/domain/repositories"
)

const dateLayout = "2006-01-02"

// ConsoleSummaryRepository prints what a run fetched and produced.
type ConsoleSummaryRepository struct {
	out     io.Writer
	heading *color.Color
	label   *color.Color
	muted   *color.Color
}

// NewConsoleSummaryRepository creates a summary printer writing to stdout.
func NewConsoleSummaryRepository() repositories.SummaryRepository {
	return NewConsoleSummaryRepositoryWithWriter(os.Stdout)
}

// NewConsoleSummaryRepositoryWithWriter creates a summary printer writing to out.
func NewConsoleSummaryRepositoryWithWriter(out io.Writer) *ConsoleSummaryRepository {
	return &ConsoleSummaryRepository{
		out:     out,
		heading: color.New(color.FgGreen).Add(color.Underline),
		label:   color.New(color.FgCyan),
		muted:   color.New(color.FgHiBlack),
	}
}

func (r *ConsoleSummaryRepository) PrintCommits(commits []entities.CommitRecord) {
	r.heading.Fprintf(r.out, "Recent commits (%d)\n", len(commits))
	if len(commits) == 0 {
		r.muted.Fprintln(r.out, "  none")
		return
	}

	for _, commit := range commits {
		r.label.Fprintf(r.out, "- [%s]", commit.ShortSHA)
		fmt.Fprintf(r.out, " %s\n", commit.Title())
		r.muted.Fprintf(r.out, "  by %s on %s\n", commit.AuthorName, formatDate(commit.Date))
		r.printFiles(commit.Files)
	}
	fmt.Fprintln(r.out)
}

func (r *ConsoleSummaryRepository) PrintChangeRequests(changeRequests []entities.ChangeRequestRecord) {
	r.heading.Fprintf(r.out, "Merged change requests (%d)\n", len(changeRequests))
	if len(changeRequests) == 0 {
		r.muted.Fprintln(r.out, "  none")
		return
	}

	for _, changeRequest := range changeRequests {
		r.label.Fprintf(r.out, "- [%s]", changeRequest.Reference())
		fmt.Fprintf(r.out, " %s\n", changeRequest.Title)
		r.muted.Fprintf(r.out, "  by %s, merged %s\n", changeRequest.Author, formatDate(changeRequest.MergedAt))
		r.printFiles(changeRequest.Files)
	}
	fmt.Fprintln(r.out)
}

// PrintContext shows the exact text that would be sent to the model.
func (r *ConsoleSummaryRepository) PrintContext(ref entities.RepositoryRef, context string) {
	r.heading.Fprintf(r.out, "Context for %s\n", ref)
	fmt.Fprintln(r.out, context)
}

func (r *ConsoleSummaryRepository) PrintDocument(ref entities.RepositoryRef, document string) {
	r.heading.Fprintf(r.out, "Release notes for %s\n", ref)
	fmt.Fprintln(r.out, document)
}

func (r *ConsoleSummaryRepository) printFiles(files []entities.FileChange) {
	for _, file := range files {
		fmt.Fprintf(r.out, "    %s ", file.Path)
		r.muted.Fprintf(r.out, "(%s, +%d/-%d)\n", file.Status, file.Additions, file.Deletions)
	}
}

func formatDate(date time.Time) string {
	if date.IsZero() {
		return "unknown date"
	}
	return date.UTC().Format(dateLayout)
}
