package types

import (
	"time"
)

// Outcome is the single classification a processed link receives in a run.
type Outcome string

const (
	OutcomeUpToDate      Outcome = "up_to_date"
	OutcomeUpdated       Outcome = "updated"
	OutcomeNotWorkshared Outcome = "not_workshared"
	OutcomeDocNotFound   Outcome = "doc_not_found"
	OutcomeLoadFailed    Outcome = "load_failed"
)

// AllOutcomes lists outcomes in report order.
var AllOutcomes = []Outcome{
	OutcomeUpToDate,
	OutcomeUpdated,
	OutcomeNotWorkshared,
	OutcomeDocNotFound,
	OutcomeLoadFailed,
}

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// IsProblem reports whether the outcome lands in one of the report buckets.
func (o Outcome) IsProblem() bool {
	switch o {
	case OutcomeNotWorkshared, OutcomeDocNotFound, OutcomeLoadFailed:
		return true
	default:
		return false
	}
}

// LinkEntry records everything that happened to one link during a run.
type LinkEntry struct {
	Name   string
	Folder string
	// WasLoaded is the load state before processing.
	WasLoaded bool
	Reloaded  bool

	CurrentRevision int
	NewRevision     int
	// NewPath is the file the link was (or would have been) rebound to.
	// Empty when no newer revision exists.
	NewPath string

	Workshared     bool
	ClosedWorksets []Workset

	Outcome Outcome
	// Error holds the host message for load_failed outcomes.
	Error string
}

// NeedsUpdate reports whether a newer revision was found for the link.
func (e LinkEntry) NeedsUpdate() bool {
	return e.NewPath != ""
}

// Diagnostic is a non-fatal observation about a link that is not tied to
// an outcome, such as a missing external reference.
type Diagnostic struct {
	Link    string
	Code    string
	Message string
}

// RunResult is the aggregate a single orchestrator run returns.
type RunResult struct {
	ID         string
	Document   string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool

	Entries     []LinkEntry
	Diagnostics []Diagnostic
}

// Filter returns the entries with the given outcome, in processing order.
func (r *RunResult) Filter(outcome Outcome) []LinkEntry {
	var out []LinkEntry
	for _, entry := range r.Entries {
		if entry.Outcome == outcome {
			out = append(out, entry)
		}
	}
	return out
}

// Counts tallies entries per outcome.
func (r *RunResult) Counts() map[Outcome]int {
	counts := make(map[Outcome]int, len(AllOutcomes))
	for _, entry := range r.Entries {
		counts[entry.Outcome]++
	}
	return counts
}

// Folders returns the distinct link folders seen in the run, in first-seen order.
func (r *RunResult) Folders() []string {
	seen := make(map[string]bool)
	var folders []string
	for _, entry := range r.Entries {
		if entry.Folder == "" || seen[entry.Folder] {
			continue
		}
		seen[entry.Folder] = true
		folders = append(folders, entry.Folder)
	}
	return folders
}
