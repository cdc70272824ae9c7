package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/history"
	"github.com/arthur-debert/relink/pkg/types"
)

// textRenderer writes plain, uncolored output.
type textRenderer struct {
	output io.Writer
}

func newTextRenderer(w io.Writer) *textRenderer {
	return &textRenderer{output: w}
}

func (r *textRenderer) RenderSummary(s Summary) error {
	var b strings.Builder
	b.WriteString(headline(s.Result) + "\n")

	counts := s.Result.Counts()
	for _, ol := range outcomeLabels {
		fmt.Fprintf(&b, "  %-16s %d\n", ol.label, counts[ol.outcome])
	}
	if n := len(s.Result.Diagnostics); n > 0 {
		fmt.Fprintf(&b, "  %-16s %d\n", attentionLabel, n)
	}
	if s.LogPath != "" {
		fmt.Fprintf(&b, "Log: %s\n", s.LogPath)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *textRenderer) RenderHistory(runs []history.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(r.output, "No runs recorded")
		return err
	}

	tw := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(historyHeader, "\t"))
	for _, run := range runs {
		fmt.Fprintln(tw, strings.Join(historyRow(run), "\t"))
	}
	return tw.Flush()
}

func (r *textRenderer) RenderRun(run history.Run, entries []types.LinkEntry) error {
	if _, err := fmt.Fprintln(r.output, runTitle(run)); err != nil {
		return err
	}
	if run.LogPath != "" {
		fmt.Fprintf(r.output, "Log: %s\n", run.LogPath)
	}

	tw := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(entryHeader, "\t"))
	for _, e := range entries {
		fmt.Fprintln(tw, strings.Join(entryRow(e), "\t"))
	}
	return tw.Flush()
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %s\n", describe(err))
	return werr
}

var historyHeader = []string{"STARTED", "DOCUMENT", "LINKS", "UPDATED", "PROBLEMS", "RUN"}

func historyRow(run history.Run) []string {
	started := "-"
	if !run.StartedAt.IsZero() {
		started = run.StartedAt.Local().Format("2006-01-02 15:04:05")
	}
	document := run.Document
	if run.DryRun {
		document += " (dry run)"
	}
	return []string{
		started,
		document,
		fmt.Sprint(run.Links),
		fmt.Sprint(run.Counts[types.OutcomeUpdated]),
		fmt.Sprint(run.Problems()),
		run.ID,
	}
}

var entryHeader = []string{"LINK", "REV", "NEW", "OUTCOME", "ERROR"}

func entryRow(e types.LinkEntry) []string {
	newRev := "-"
	if e.NeedsUpdate() {
		newRev = fmt.Sprint(e.NewRevision)
	}
	return []string{
		e.Name,
		fmt.Sprint(e.CurrentRevision),
		newRev,
		outcomeLabel(e.Outcome),
		e.Error,
	}
}

func runTitle(run history.Run) string {
	row := historyRow(run)
	return fmt.Sprintf("Run %s: %s, started %s", run.ID, row[1], row[0])
}

// describe returns the error message with its code when it carries one.
func describe(err error) string {
	code := errors.GetErrorCode(err)
	if code == errors.ErrUnknown {
		return err.Error()
	}
	return fmt.Sprintf("%s (%s)", errors.Message(err), code)
}
