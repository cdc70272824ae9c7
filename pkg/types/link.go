package types

import (
	"path/filepath"
	"strings"
)

// Link is a reference from the host document to an external file.
// The host owns it; relink only rebinds it through a LinkSource.
type Link struct {
	ID     string
	Name   string
	Nested bool
}

// LinkInfo is what the inspector derives for one link at the start of its
// processing.
type LinkInfo struct {
	Name   string
	Folder string
	Loaded bool
	// Document is the open document matching the link, nil when none is open.
	Document Document
}

// WorksetKind distinguishes user worksets from system-managed ones.
type WorksetKind string

const (
	WorksetUser     WorksetKind = "user"
	WorksetFamily   WorksetKind = "family"
	WorksetView     WorksetKind = "view"
	WorksetStandard WorksetKind = "standard"
)

// Workset is a named partition of a workshared document.
type Workset struct {
	ID   int
	Name string
	Kind WorksetKind
	Open bool
}

// WorksetConfig tells the host which worksets to open when binding a link.
// The zero value opens everything.
type WorksetConfig struct {
	closed []int
}

// OpenAllWorksets returns a configuration that opens every workset.
func OpenAllWorksets() WorksetConfig {
	return WorksetConfig{}
}

// CloseWorksets returns a configuration that closes exactly ids.
func CloseWorksets(ids ...int) WorksetConfig {
	cfg := WorksetConfig{}
	cfg.Close(ids...)
	return cfg
}

// Close adds ids to the closed set, ignoring duplicates.
func (c *WorksetConfig) Close(ids ...int) {
	for _, id := range ids {
		if !c.IsClosed(id) {
			c.closed = append(c.closed, id)
		}
	}
}

// IsClosed reports whether the workset with id stays closed.
func (c WorksetConfig) IsClosed(id int) bool {
	for _, closed := range c.closed {
		if closed == id {
			return true
		}
	}
	return false
}

// Closed returns the closed workset ids in the order they were added.
func (c WorksetConfig) Closed() []int {
	out := make([]int, len(c.closed))
	copy(out, c.closed)
	return out
}

// ClosedUserWorksets returns the user worksets of doc that are currently closed.
func ClosedUserWorksets(doc Document) []Workset {
	var closed []Workset
	for _, ws := range doc.Worksets() {
		if ws.Kind == WorksetUser && !ws.Open {
			closed = append(closed, ws)
		}
	}
	return closed
}

// DocumentIndex maps document titles to open documents for a single run.
type DocumentIndex map[string]Document

// NewDocumentIndex indexes docs by title. A later document with the same
// title replaces an earlier one.
func NewDocumentIndex(docs []Document) DocumentIndex {
	index := make(DocumentIndex, len(docs))
	for _, doc := range docs {
		index[doc.Title()] = doc
	}
	return index
}

// Lookup finds the open document for a link file name by stripping its
// extension.
func (idx DocumentIndex) Lookup(linkName string) (Document, bool) {
	doc, ok := idx[Stem(linkName)]
	return doc, ok
}

// Stem returns name without its final extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
