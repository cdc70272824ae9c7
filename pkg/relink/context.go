package relink

import (
	"strings"

	"github.com/arthur-debert/relink/pkg/inspector"
	"github.com/arthur-debert/relink/pkg/scanner"
	"github.com/arthur-debert/relink/pkg/types"
)

// Settings holds the run parameters the orchestrator needs from config.
type Settings struct {
	FolderMarker string
	Extension    string
	// DryRun computes outcomes without reloading or relinking anything.
	DryRun bool
}

// RunContext is the state shared by every step of a single run. It is built
// once per run and never outlives it.
type RunContext struct {
	Source    types.LinkSource
	Index     types.DocumentIndex
	Scanner   *scanner.Scanner
	Inspector *inspector.Inspector
	Settings  Settings
}

// NewRunContext snapshots the open documents of source into a fresh index.
func NewRunContext(source types.LinkSource, fsys types.FS, settings Settings) (*RunContext, error) {
	docs, err := source.OpenDocuments()
	if err != nil {
		return nil, err
	}
	index := types.NewDocumentIndex(docs)
	return &RunContext{
		Source:    source,
		Index:     index,
		Scanner:   scanner.New(fsys, scanner.Options{FolderMarker: settings.FolderMarker, Extension: settings.Extension}),
		Inspector: inspector.New(source, index),
		Settings:  settings,
	}, nil
}

// InLinksFolder reports whether folder is eligible for relinking.
func (rc *RunContext) InLinksFolder(folder string) bool {
	return folder != "" && rc.Settings.FolderMarker != "" &&
		strings.Contains(folder, rc.Settings.FolderMarker)
}
