package run

import (
	"os"
	"time"

	"github.com/arthur-debert/relink/pkg/config"
	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/history"
	"github.com/arthur-debert/relink/pkg/logfile"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/manifest"
	"github.com/arthur-debert/relink/pkg/paths"
	"github.com/arthur-debert/relink/pkg/relink"
	"github.com/arthur-debert/relink/pkg/report"
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/rs/zerolog"
)

// Opener launches a viewer on a written log.
type Opener interface {
	Open(path string) error
}

// RunOptions holds options for a relink run
type RunOptions struct {
	Config *config.Config
	FS     types.FS

	// ManifestPath overrides host.manifest from the configuration.
	ManifestPath string
	// Source replaces the manifest adapter when set.
	Source types.LinkSource

	DryRun   bool
	NoViewer bool

	// Viewer defaults to a logfile.Viewer for report.viewer.
	Viewer Opener
	// History receives the run when set.
	History *history.Store
}

// RunResult is what a run produced
type RunResult struct {
	Result  *types.RunResult
	LogPath string
}

// Run relinks every link of the host document, writes the run log, saves
// the host state and records the run. Only link enumeration and log
// writing fail the run; the remaining steps log their errors.
func Run(opts RunOptions) (*RunResult, error) {
	logger := logging.GetLogger("commands.run")
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	source, err := openSource(opts, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("document", source.Title()).
		Bool("dryRun", opts.DryRun).
		Msg("Starting run")

	orchestrator := relink.New(source, opts.FS, Settings(cfg, opts.DryRun))
	result, err := orchestrator.Run()
	if err != nil {
		return nil, err
	}

	started := result.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	dir := logfile.Dir(paths.ExpandHome(cfg.Report.Dir), source.Path())
	logPath, err := logfile.Write(opts.FS, dir, source.Title(), started, report.Build(result))
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		saveSource(logger, source)
	}

	if opts.History != nil {
		if err := opts.History.Record(result, logPath); err != nil {
			logger.Error().Err(err).Msg("Failed to record run history")
		}
	}

	if cfg.Report.OpenViewer && !opts.NoViewer {
		viewer := opts.Viewer
		if viewer == nil {
			viewer = logfile.NewViewer(cfg.Report.Viewer)
		}
		if err := viewer.Open(logPath); err != nil {
			logger.Warn().Err(err).Str("path", logPath).Msg("Could not open run log")
		}
	}

	return &RunResult{Result: result, LogPath: logPath}, nil
}

// Settings maps configuration onto orchestrator settings.
func Settings(cfg *config.Config, dryRun bool) relink.Settings {
	return relink.Settings{
		FolderMarker: cfg.Links.FolderMarker,
		Extension:    cfg.Links.Extension,
		DryRun:       dryRun,
	}
}

// ManifestPath resolves the manifest to use: the explicit path, else
// host.manifest, relative paths taken from the working directory.
func ManifestPath(explicit string, cfg *config.Config) (string, error) {
	path := explicit
	if path == "" {
		path = cfg.Host.Manifest
	}
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput,
			"no host manifest: pass --manifest or set host.manifest")
	}
	wd, err := os.Getwd()
	if err != nil {
		return paths.ExpandHome(path), nil
	}
	return paths.Resolve(wd, path), nil
}

func openSource(opts RunOptions, cfg *config.Config) (types.LinkSource, error) {
	if opts.Source != nil {
		return opts.Source, nil
	}
	path, err := ManifestPath(opts.ManifestPath, cfg)
	if err != nil {
		return nil, err
	}
	source, err := manifest.Load(opts.FS, path, manifest.Options{RequireMarker: cfg.Links.RequireMarker})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrLinkEnumeration, "failed to open host document")
	}
	return source, nil
}

type saver interface {
	Save() error
}

func saveSource(logger zerolog.Logger, source types.LinkSource) {
	s, ok := source.(saver)
	if !ok {
		return
	}
	if err := s.Save(); err != nil {
		logger.Error().Err(err).Msg("Failed to save host document state")
	}
}
