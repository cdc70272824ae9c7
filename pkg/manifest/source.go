package manifest

import (
	"path/filepath"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/revision"
	"github.com/arthur-debert/relink/pkg/types"
)

// Options control how links are enumerated.
type Options struct {
	// RequireMarker drops links whose name lacks the -RVT- segment.
	RequireMarker bool
}

// Source is a types.LinkSource backed by a manifest file.
type Source struct {
	fs     types.FS
	path   string
	format Format
	opts   Options
	m      *Manifest
}

var _ types.LinkSource = (*Source)(nil)

// Load reads the manifest at path through fsys.
func Load(fsys types.FS, path string, opts Options) (*Source, error) {
	logger := logging.GetLogger("manifest").With().Str("path", path).Logger()

	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "failed to read manifest %s", path).
			WithDetail("path", path)
	}

	m, err := Decode(data, format)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("format", string(format)).
		Str("document", m.Document.Title).
		Int("links", len(m.Links)).
		Int("openDocuments", len(m.OpenDocuments)).
		Msg("Manifest loaded")

	return &Source{fs: fsys, path: path, format: format, opts: opts, m: m}, nil
}

// New wraps an in-memory manifest. Save writes it to path.
func New(fsys types.FS, path string, m *Manifest, opts Options) (*Source, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	if err := m.assignLinkIDs(); err != nil {
		return nil, err
	}
	return &Source{fs: fsys, path: path, format: format, opts: opts, m: m}, nil
}

// Manifest exposes the current, possibly mutated, manifest.
func (s *Source) Manifest() *Manifest { return s.m }

// Title returns the host document title, falling back to the manifest
// file stem.
func (s *Source) Title() string {
	if s.m.Document.Title != "" {
		return s.m.Document.Title
	}
	return types.Stem(filepath.Base(s.path))
}

// Path returns the host document path. Without one the manifest itself
// stands in, so relative references resolve next to it.
func (s *Source) Path() string {
	if s.m.Document.Path != "" {
		return s.m.Document.Path
	}
	return s.path
}

// Links returns the top-level link types, dropping names without the
// revision marker when the source requires it.
func (s *Source) Links() ([]types.Link, error) {
	var links []types.Link
	for _, rec := range s.m.Links {
		if rec.Nested {
			continue
		}
		if s.opts.RequireMarker && !revision.HasMarker(rec.Name) {
			continue
		}
		links = append(links, types.Link{ID: rec.ID, Name: rec.Name})
	}
	return links, nil
}

// ExternalReference returns the path recorded for link.
func (s *Source) ExternalReference(link types.Link) (string, bool) {
	rec := s.m.link(link.ID)
	if rec == nil || rec.Path == "" {
		return "", false
	}
	return rec.Path, true
}

// OpenDocuments returns a snapshot of the open documents.
func (s *Source) OpenDocuments() ([]types.Document, error) {
	docs := make([]types.Document, 0, len(s.m.OpenDocuments))
	for _, od := range s.m.OpenDocuments {
		docs = append(docs, newDocument(od))
	}
	return docs, nil
}

// IsLoaded reports the recorded load state of link.
func (s *Source) IsLoaded(link types.Link) bool {
	rec := s.m.link(link.ID)
	return rec != nil && rec.Loaded
}

// Reload marks link loaded when its file exists.
func (s *Source) Reload(link types.Link) error {
	rec := s.m.link(link.ID)
	if rec == nil {
		return errors.Newf(errors.ErrNotFound, "link %s is not in the manifest", link.Name).
			WithDetail("link", link.ID)
	}
	if rec.Path == "" {
		return errors.Newf(errors.ErrReloadFailed, "link %s has no file to load", rec.Name)
	}
	target := s.resolve(rec.Path)
	if err := s.requireFile(target); err != nil {
		return errors.Wrapf(err, errors.ErrReloadFailed, "cannot load %s", rec.Name)
	}
	rec.Loaded = true
	return nil
}

// Relink binds link to the file at path and applies cfg to the worksets of
// the matching open document, which takes the new file's title.
func (s *Source) Relink(link types.Link, path string, cfg types.WorksetConfig) error {
	rec := s.m.link(link.ID)
	if rec == nil {
		return errors.Newf(errors.ErrNotFound, "link %s is not in the manifest", link.Name).
			WithDetail("link", link.ID)
	}
	if err := s.requireFile(s.resolve(path)); err != nil {
		return errors.Wrapf(err, errors.ErrRelinkFailed, "cannot relink %s", rec.Name)
	}

	oldTitle := types.Stem(rec.Name)
	rec.Path = path
	rec.Name = filepath.Base(path)
	rec.Loaded = true

	if od := s.m.openDocument(oldTitle); od != nil {
		od.Title = types.Stem(rec.Name)
		for i := range od.Worksets {
			od.Worksets[i].Open = !cfg.IsClosed(od.Worksets[i].ID)
		}
	}

	logger := logging.GetLogger("manifest")
	logger.Debug().
		Str("link", link.ID).
		Str("path", path).
		Ints("closedWorksets", cfg.Closed()).
		Msg("Link rebound")
	return nil
}

// Save writes the manifest back in the format it was read in.
func (s *Source) Save() error {
	data, err := Encode(s.m, s.format)
	if err != nil {
		return err
	}
	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to write manifest %s", s.path).
			WithDetail("path", s.path)
	}
	return nil
}

func (s *Source) resolve(ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(s.Path()), ref)
}

func (s *Source) requireFile(path string) error {
	info, err := s.fs.Stat(path)
	if err != nil {
		return errors.Newf(errors.ErrNotFound, "file %s not found", path).WithDetail("path", path)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "%s is a directory", path)
	}
	return nil
}

type document struct {
	rec OpenDocument
}

func newDocument(rec OpenDocument) *document {
	sets := make([]WorksetRecord, len(rec.Worksets))
	copy(sets, rec.Worksets)
	rec.Worksets = sets
	return &document{rec: rec}
}

func (d *document) Title() string      { return d.rec.Title }
func (d *document) IsWorkshared() bool { return d.rec.Workshared }

func (d *document) Worksets() []types.Workset {
	sets := make([]types.Workset, 0, len(d.rec.Worksets))
	for _, ws := range d.rec.Worksets {
		kind := types.WorksetKind(ws.Kind)
		if kind == "" {
			kind = types.WorksetUser
		}
		sets = append(sets, types.Workset{ID: ws.ID, Name: ws.Name, Kind: kind, Open: ws.Open})
	}
	return sets
}

