package runs

import (
	"github.com/arthur-debert/relink/pkg/history"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
)

// DefaultLimit is how many runs List returns when no limit is given.
const DefaultLimit = 10

// ListOptions holds options for listing recorded runs
type ListOptions struct {
	// HistoryPath is the history database file.
	HistoryPath string
	Limit       int
}

// List returns the most recent runs, newest first.
func List(opts ListOptions) ([]history.Run, error) {
	logger := logging.GetLogger("commands.runs")

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	store, err := history.Open(opts.HistoryPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(limit)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("runs", len(runs)).Str("path", opts.HistoryPath).Msg("Listed runs")
	return runs, nil
}

// ShowOptions selects one recorded run
type ShowOptions struct {
	HistoryPath string
	ID          string
}

// RunDetail is a recorded run with its per-link entries.
type RunDetail struct {
	Run     history.Run
	Entries []types.LinkEntry
}

// Show returns run opts.ID and its link entries in processing order.
func Show(opts ShowOptions) (*RunDetail, error) {
	logger := logging.GetLogger("commands.runs")

	store, err := history.Open(opts.HistoryPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	run, err := store.Get(opts.ID)
	if err != nil {
		return nil, err
	}
	entries, err := store.Entries(opts.ID)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("run", opts.ID).Int("links", len(entries)).Msg("Loaded run")
	return &RunDetail{Run: run, Entries: entries}, nil
}
