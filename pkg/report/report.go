// Package report turns a relink run into the plain-text log handed to the
// operator. The log is the only place per-link failures surface.
package report

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/relink/pkg/types"
)

// Separator borders every per-link section.
var Separator = "+" + strings.Repeat("-", 80) + "+"

// TimeLayout formats the run start time in the report header.
const TimeLayout = "2006-01-02 15:04:05"

// BadModel is a link that could not be loaded, with the host's message.
type BadModel struct {
	Name  string
	Error string
}

// Buckets are the three problem collections of a run, in processing order.
type Buckets struct {
	NotWorkshared []string
	DocNotFound   []string
	BadModels     []BadModel
}

// Empty reports whether no link landed in any bucket.
func (b Buckets) Empty() bool {
	return len(b.NotWorkshared) == 0 && len(b.DocNotFound) == 0 && len(b.BadModels) == 0
}

// NewBuckets derives the buckets from the entry outcomes. Every entry with
// a problem outcome lands in exactly one bucket.
func NewBuckets(result *types.RunResult) Buckets {
	var b Buckets
	for _, entry := range result.Entries {
		switch entry.Outcome {
		case types.OutcomeNotWorkshared:
			b.NotWorkshared = append(b.NotWorkshared, entry.Name)
		case types.OutcomeDocNotFound:
			b.DocNotFound = append(b.DocNotFound, entry.Name)
		case types.OutcomeLoadFailed:
			b.BadModels = append(b.BadModels, BadModel{Name: entry.Name, Error: entry.Error})
		}
	}
	return b
}

// Build renders the full log text for result.
func Build(result *types.RunResult) string {
	var b strings.Builder

	writeHeader(&b, result)

	b.WriteString("\n" + Separator)
	for _, entry := range result.Entries {
		writeEntry(&b, entry)
		b.WriteString("\n" + Separator)
	}

	writeSummaries(&b, NewBuckets(result), result.Diagnostics)
	b.WriteString("\n")
	return b.String()
}

func writeHeader(b *strings.Builder, result *types.RunResult) {
	fmt.Fprintf(b, "Reload Links report for %s", result.Document)
	if !result.StartedAt.IsZero() {
		fmt.Fprintf(b, "\nStarted = %s", result.StartedAt.Format(TimeLayout))
	}
	if result.ID != "" {
		fmt.Fprintf(b, "\nRun = %s", result.ID)
	}
	if result.DryRun {
		b.WriteString("\nDRY RUN - no links were changed")
	}
	fmt.Fprintf(b, "\nLinks checked = %d", len(result.Entries))
}

func writeEntry(b *strings.Builder, entry types.LinkEntry) {
	fmt.Fprintf(b, "\nLink Name = %s", entry.Name)
	fmt.Fprintf(b, "\nLink Path = %s", entry.Folder)
	if entry.WasLoaded {
		b.WriteString("\nLoaded = Yes")
	} else if entry.Reloaded {
		b.WriteString("\nLoaded = No (reloaded to check for updates)")
	} else {
		b.WriteString("\nLoaded = No")
	}

	switch {
	case entry.NeedsUpdate():
		fmt.Fprintf(b, "\nNeed to update %d to Rev %d", entry.CurrentRevision, entry.NewRevision)
		fmt.Fprintf(b, "\nNew File = %s", entry.NewPath)
	case entry.Outcome == types.OutcomeUpToDate:
		fmt.Fprintf(b, "\nFile: %s is already up to date at Rev %d", entry.Name, entry.CurrentRevision)
	}

	if entry.Workshared {
		b.WriteString("\nClosed Worksets as follows:")
		if len(entry.ClosedWorksets) == 0 {
			b.WriteString("\n  (none)")
		}
		for _, ws := range entry.ClosedWorksets {
			b.WriteString("\n  [-] " + ws.Name)
		}
	}

	switch entry.Outcome {
	case types.OutcomeNotWorkshared:
		b.WriteString("\nThis file is NOT Workshared...!")
	case types.OutcomeDocNotFound:
		b.WriteString("\nLinked document Not Found")
	case types.OutcomeLoadFailed:
		if entry.NeedsUpdate() {
			b.WriteString("\nERROR LOADING MODEL: " + entry.Error)
		} else {
			b.WriteString("\nERROR RELOADING MODEL: " + entry.Error)
		}
	}
}

func writeSummaries(b *strings.Builder, buckets Buckets, diags []types.Diagnostic) {
	if len(buckets.NotWorkshared) > 0 {
		b.WriteString("\n\nThe Following Links are not workshared...!!")
		for _, name := range buckets.NotWorkshared {
			b.WriteString("\n" + name)
		}
	}

	if len(buckets.DocNotFound) > 0 {
		b.WriteString("\n\nThe Following Links were not found.")
		for _, name := range buckets.DocNotFound {
			b.WriteString("\n" + name)
		}
	}

	if len(buckets.BadModels) > 0 {
		b.WriteString("\n\nThe Following Links could not be loaded.")
		for _, m := range buckets.BadModels {
			b.WriteString("\n" + m.Name)
			b.WriteString("\n  " + m.Error)
		}
	}

	if len(diags) > 0 {
		b.WriteString("\n\nThe Following Links need manual attention.")
		for _, d := range diags {
			fmt.Fprintf(b, "\n%s: %s (%s)", d.Link, d.Message, d.Code)
		}
	}
}

