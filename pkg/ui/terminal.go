package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/relink/pkg/history"
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9B9B9B"})
)

// outcomeStyle colors a summary line by how much attention it needs.
func outcomeStyle(outcome types.Outcome, count int) *pterm.Style {
	if count == 0 {
		return pterm.NewStyle(pterm.FgGray)
	}
	switch outcome {
	case types.OutcomeUpdated:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case types.OutcomeUpToDate:
		return pterm.NewStyle(pterm.FgDefault)
	case types.OutcomeLoadFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgYellow)
	}
}

// terminalRenderer writes colored output for interactive terminals.
type terminalRenderer struct {
	output io.Writer
}

func newTerminalRenderer(w io.Writer) *terminalRenderer {
	return &terminalRenderer{output: w}
}

func (r *terminalRenderer) RenderSummary(s Summary) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(headline(s.Result)) + "\n")

	counts := s.Result.Counts()
	for _, ol := range outcomeLabels {
		n := counts[ol.outcome]
		line := fmt.Sprintf("  %-16s %d", ol.label, n)
		b.WriteString(outcomeStyle(ol.outcome, n).Sprint(line) + "\n")
	}
	if n := len(s.Result.Diagnostics); n > 0 {
		line := fmt.Sprintf("  %-16s %d", attentionLabel, n)
		b.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint(line) + "\n")
	}
	if s.LogPath != "" {
		b.WriteString(pterm.Info.Prefix.Text + " " + pathStyle.Render(s.LogPath) + "\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *terminalRenderer) RenderHistory(runs []history.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(r.output, pterm.NewStyle(pterm.FgGray).Sprint("No runs recorded"))
		return err
	}

	data := pterm.TableData{historyHeader}
	for _, run := range runs {
		data = append(data, historyRow(run))
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, table)
	return err
}

func (r *terminalRenderer) RenderRun(run history.Run, entries []types.LinkEntry) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(runTitle(run)) + "\n")
	if run.LogPath != "" {
		b.WriteString(pterm.Info.Prefix.Text + " " + pathStyle.Render(run.LogPath) + "\n")
	}

	data := pterm.TableData{entryHeader}
	for _, e := range entries {
		row := entryRow(e)
		row[3] = outcomeStyle(e.Outcome, 1).Sprint(row[3])
		data = append(data, row)
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	b.WriteString(table + "\n")

	_, err = io.WriteString(r.output, b.String())
	return err
}

func (r *terminalRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, pterm.Error.Sprint(describe(err)))
	return werr
}
