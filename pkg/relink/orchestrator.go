package relink

import (
	"time"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/revision"
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Orchestrator runs relink passes over one host document.
type Orchestrator struct {
	source   types.LinkSource
	fs       types.FS
	settings Settings

	now   func() time.Time
	newID func() string
}

// New creates an orchestrator for source, scanning folders through fsys.
func New(source types.LinkSource, fsys types.FS, settings Settings) *Orchestrator {
	return &Orchestrator{
		source:   source,
		fs:       fsys,
		settings: settings,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Run processes every link of the host document once and returns the
// aggregate. It only fails when links or open documents cannot be
// enumerated; per-link problems end up in the result.
func (o *Orchestrator) Run() (*types.RunResult, error) {
	logger := logging.GetLogger("relink")
	done := logging.LogOperationStart(logger, "relink run")
	defer done()

	result := &types.RunResult{
		ID:        o.newID(),
		Document:  o.source.Title(),
		StartedAt: o.now(),
		DryRun:    o.settings.DryRun,
	}

	rc, err := NewRunContext(o.source, o.fs, o.settings)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrLinkEnumeration, "failed to enumerate open documents")
	}

	links, err := o.source.Links()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrLinkEnumeration, "failed to enumerate links")
	}
	logger.Info().
		Str("run", result.ID).
		Str("document", result.Document).
		Int("links", len(links)).
		Int("openDocuments", len(rc.Index)).
		Msg("Starting relink run")

	for _, link := range links {
		entry, ok := o.processLink(rc, link, result)
		if !ok {
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	result.FinishedAt = o.now()
	counts := result.Counts()
	logger.Info().
		Str("run", result.ID).
		Int("processed", len(result.Entries)).
		Int("updated", counts[types.OutcomeUpdated]).
		Int("upToDate", counts[types.OutcomeUpToDate]).
		Int("notWorkshared", counts[types.OutcomeNotWorkshared]).
		Int("docNotFound", counts[types.OutcomeDocNotFound]).
		Int("loadFailed", counts[types.OutcomeLoadFailed]).
		Msg("Relink run finished")
	return result, nil
}

// processLink takes one link through the state machine. The boolean is
// false when the link is filtered out and gets no entry.
func (o *Orchestrator) processLink(rc *RunContext, link types.Link, result *types.RunResult) (types.LinkEntry, bool) {
	logger := logging.GetLogger("relink").With().Str("link", link.Name).Logger()

	// Filter
	if link.Nested {
		logger.Trace().Msg("Skipping nested link")
		return types.LinkEntry{}, false
	}
	info, diags := rc.Inspector.Inspect(link)
	result.Diagnostics = append(result.Diagnostics, diags...)
	if !rc.InLinksFolder(info.Folder) {
		logger.Debug().Str("folder", info.Folder).Msg("Link is outside the links folder")
		return types.LinkEntry{}, false
	}

	entry := types.LinkEntry{
		Name:      info.Name,
		Folder:    info.Folder,
		WasLoaded: info.Loaded,
	}

	// EnsureLoaded
	if !info.Loaded && !rc.Settings.DryRun {
		logger.Debug().Msg("Link is unloaded, reloading for inspection")
		if err := rc.Source.Reload(link); err != nil {
			logger.Warn().Err(err).Msg("Failed to reload link")
			return failed(entry, errors.Wrap(err, errors.ErrReloadFailed, "reload failed")), true
		}
		entry.Reloaded = true
	}

	// CompareRevisions
	entry.CurrentRevision = revision.ParseLenient(info.Name)
	entry.NewRevision = entry.CurrentRevision

	scan, err := rc.Scanner.FindLatest(info.Folder, info.Name)
	if err != nil {
		logger.Warn().Err(err).Msg("Folder scan failed, treating link as up to date")
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Link:    info.Name,
			Code:    string(errors.GetErrorCode(err)),
			Message: errors.Message(err),
		})
	}
	if !scan.Found || scan.Revision <= entry.CurrentRevision {
		if scan.Found && scan.Revision < entry.CurrentRevision {
			logger.Debug().Int("available", scan.Revision).Msg("Folder only holds older revisions")
		}
		entry.Outcome = types.OutcomeUpToDate
		logger.Debug().Int("revision", entry.CurrentRevision).Msg("Link is up to date")
		return entry, true
	}
	entry.NewRevision = scan.Revision
	entry.NewPath = scan.Path()

	// Resolve
	doc := info.Document
	var cfg types.WorksetConfig
	switch {
	case doc == nil:
		logger.Info().Msg("No open document for link")
		entry.Outcome = types.OutcomeDocNotFound
		return entry, true
	case doc.IsWorkshared():
		entry.Workshared = true
		entry.ClosedWorksets = types.ClosedUserWorksets(doc)
		ids := make([]int, 0, len(entry.ClosedWorksets))
		for _, ws := range entry.ClosedWorksets {
			ids = append(ids, ws.ID)
		}
		cfg = types.CloseWorksets(ids...)
		entry.Outcome = types.OutcomeUpdated
	default:
		cfg = types.OpenAllWorksets()
		entry.Outcome = types.OutcomeNotWorkshared
	}

	if rc.Settings.DryRun {
		logRelink(logger, entry, "Would relink")
		return entry, true
	}

	// Relink
	if err := rc.Source.Relink(link, entry.NewPath, cfg); err != nil {
		logger.Warn().Err(err).Str("path", entry.NewPath).Msg("Relink failed")
		return failed(entry, errors.Wrap(err, errors.ErrRelinkFailed, "relink failed")), true
	}
	logRelink(logger, entry, "Relinked")
	return entry, true
}

func failed(entry types.LinkEntry, err error) types.LinkEntry {
	entry.Outcome = types.OutcomeLoadFailed
	entry.Error = errors.Message(err)
	return entry
}

func logRelink(logger zerolog.Logger, entry types.LinkEntry, msg string) {
	logger.Info().
		Int("from", entry.CurrentRevision).
		Int("to", entry.NewRevision).
		Str("path", entry.NewPath).
		Int("closedWorksets", len(entry.ClosedWorksets)).
		Str("outcome", entry.Outcome.String()).
		Msg(msg)
}
