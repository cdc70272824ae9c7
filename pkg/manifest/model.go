package manifest

import (
	"strconv"

	"github.com/arthur-debert/relink/pkg/errors"
)

// Manifest is the on-disk description of a host document.
type Manifest struct {
	Document      DocumentRecord `yaml:"document" toml:"document"`
	Links         []LinkRecord   `yaml:"links" toml:"links"`
	OpenDocuments []OpenDocument `yaml:"open_documents" toml:"open_documents"`
}

// DocumentRecord names the host document.
type DocumentRecord struct {
	Title string `yaml:"title" toml:"title"`
	Path  string `yaml:"path" toml:"path"`
}

// LinkRecord is one link type of the host document. Path is the external
// reference, absolute or relative to the host document's folder.
type LinkRecord struct {
	ID     string `yaml:"id" toml:"id"`
	Name   string `yaml:"name" toml:"name"`
	Path   string `yaml:"path,omitempty" toml:"path,omitempty"`
	Loaded bool   `yaml:"loaded" toml:"loaded"`
	Nested bool   `yaml:"nested,omitempty" toml:"nested,omitempty"`
}

// OpenDocument is a document the host has open, typically a loaded link.
type OpenDocument struct {
	Title      string          `yaml:"title" toml:"title"`
	Workshared bool            `yaml:"workshared" toml:"workshared"`
	Worksets   []WorksetRecord `yaml:"worksets,omitempty" toml:"worksets,omitempty"`
}

// WorksetRecord is one row of a document's workset table.
type WorksetRecord struct {
	ID   int    `yaml:"id" toml:"id"`
	Name string `yaml:"name" toml:"name"`
	Kind string `yaml:"kind" toml:"kind"`
	Open bool   `yaml:"open" toml:"open"`
}

// assignLinkIDs gives every link without an id its 1-based position and
// rejects duplicate ids, so each link record is addressable on its own.
func (m *Manifest) assignLinkIDs() error {
	seen := make(map[string]int, len(m.Links))
	for i := range m.Links {
		rec := &m.Links[i]
		if rec.ID == "" {
			rec.ID = strconv.Itoa(i + 1)
		}
		if prev, ok := seen[rec.ID]; ok {
			return errors.Newf(errors.ErrManifestParse,
				"links %d and %d share id %q", prev+1, i+1, rec.ID).
				WithDetail("id", rec.ID)
		}
		seen[rec.ID] = i
	}
	return nil
}

func (m *Manifest) link(id string) *LinkRecord {
	for i := range m.Links {
		if m.Links[i].ID == id {
			return &m.Links[i]
		}
	}
	return nil
}

func (m *Manifest) openDocument(title string) *OpenDocument {
	for i := range m.OpenDocuments {
		if m.OpenDocuments[i].Title == title {
			return &m.OpenDocuments[i]
		}
	}
	return nil
}
