// Package ui prints the short console summary of relink runs and history.
// The full per-link detail lives in the run log; this package only tells
// the operator what happened and where to look.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/relink/pkg/history"
	"github.com/arthur-debert/relink/pkg/types"
)

// Summary is what gets printed after a run.
type Summary struct {
	Result  *types.RunResult
	LogPath string
}

// Renderer prints summaries, history listings and errors.
type Renderer interface {
	RenderSummary(s Summary) error
	RenderHistory(runs []history.Run) error
	RenderRun(run history.Run, entries []types.LinkEntry) error
	RenderError(err error) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output
// when it is a file and falls back to plain text otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return newTerminalRenderer(output), nil
	case FormatText:
		return newTextRenderer(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

// outcomeLabels are the summary labels in display order.
var outcomeLabels = []struct {
	outcome types.Outcome
	label   string
}{
	{types.OutcomeUpdated, "updated"},
	{types.OutcomeUpToDate, "up to date"},
	{types.OutcomeNotWorkshared, "not workshared"},
	{types.OutcomeDocNotFound, "doc not found"},
	{types.OutcomeLoadFailed, "load failed"},
}

const attentionLabel = "need attention"

func outcomeLabel(outcome types.Outcome) string {
	for _, ol := range outcomeLabels {
		if ol.outcome == outcome {
			return ol.label
		}
	}
	return string(outcome)
}

func headline(result *types.RunResult) string {
	title := "Relinked " + result.Document
	if result.DryRun {
		title += " (dry run)"
	}
	return title
}
