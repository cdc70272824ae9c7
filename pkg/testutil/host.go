package testutil

import (
	"github.com/arthur-debert/relink/pkg/types"
)

// FakeDocument is an open document for tests.
type FakeDocument struct {
	Name   string
	Shared bool
	Sets   []types.Workset
}

// Title returns the document title.
func (d *FakeDocument) Title() string { return d.Name }

// IsWorkshared reports whether the document is workshared.
func (d *FakeDocument) IsWorkshared() bool { return d.Shared }

// Worksets returns the workset table.
func (d *FakeDocument) Worksets() []types.Workset { return d.Sets }

// RelinkCall records one Relink invocation.
type RelinkCall struct {
	Link   types.Link
	Path   string
	Config types.WorksetConfig
}

// FakeSource is an in-memory types.LinkSource. Errors are keyed by link name.
type FakeSource struct {
	DocTitle string
	DocPath  string

	LinkList   []types.Link
	References map[string]string
	Loaded     map[string]bool
	Docs       []types.Document

	LinksErr  error
	DocsErr   error
	ReloadErr map[string]error
	RelinkErr map[string]error

	Reloads []string
	Relinks []RelinkCall
}

// NewFakeSource creates an empty source for the host document at path.
func NewFakeSource(title, path string) *FakeSource {
	return &FakeSource{
		DocTitle:   title,
		DocPath:    path,
		References: make(map[string]string),
		Loaded:     make(map[string]bool),
		ReloadErr:  make(map[string]error),
		RelinkErr:  make(map[string]error),
	}
}

// AddLink registers a link bound to ref. An empty ref leaves the link
// without an external reference.
func (s *FakeSource) AddLink(name, ref string, loaded bool) types.Link {
	link := types.Link{ID: name, Name: name}
	s.LinkList = append(s.LinkList, link)
	if ref != "" {
		s.References[link.ID] = ref
	}
	s.Loaded[link.ID] = loaded
	return link
}

// AddNestedLink registers a nested link.
func (s *FakeSource) AddNestedLink(name, ref string) types.Link {
	link := types.Link{ID: name, Name: name, Nested: true}
	s.LinkList = append(s.LinkList, link)
	s.References[link.ID] = ref
	s.Loaded[link.ID] = true
	return link
}

// AddDocument registers an open document.
func (s *FakeSource) AddDocument(doc types.Document) {
	s.Docs = append(s.Docs, doc)
}

// RelinkedPaths returns the target paths of recorded relinks, in call order.
func (s *FakeSource) RelinkedPaths() []string {
	paths := make([]string, 0, len(s.Relinks))
	for _, call := range s.Relinks {
		paths = append(paths, call.Path)
	}
	return paths
}

func (s *FakeSource) Title() string { return s.DocTitle }

func (s *FakeSource) Path() string { return s.DocPath }

func (s *FakeSource) Links() ([]types.Link, error) {
	if s.LinksErr != nil {
		return nil, s.LinksErr
	}
	return s.LinkList, nil
}

func (s *FakeSource) ExternalReference(link types.Link) (string, bool) {
	ref, ok := s.References[link.ID]
	return ref, ok
}

func (s *FakeSource) OpenDocuments() ([]types.Document, error) {
	if s.DocsErr != nil {
		return nil, s.DocsErr
	}
	return s.Docs, nil
}

func (s *FakeSource) IsLoaded(link types.Link) bool {
	return s.Loaded[link.ID]
}

func (s *FakeSource) Reload(link types.Link) error {
	s.Reloads = append(s.Reloads, link.Name)
	if err := s.ReloadErr[link.Name]; err != nil {
		return err
	}
	s.Loaded[link.ID] = true
	return nil
}

func (s *FakeSource) Relink(link types.Link, path string, cfg types.WorksetConfig) error {
	s.Relinks = append(s.Relinks, RelinkCall{Link: link, Path: path, Config: cfg})
	return s.RelinkErr[link.Name]
}
