package types

import (
	"io/fs"
)

// FS is the filesystem interface required for relink operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
}

// Pather provides paths for relink operations
type Pather interface {
	// ConfigDir returns the XDG config directory for relink
	ConfigDir() string

	// StateDir returns the XDG state directory for relink
	StateDir() string

	// DataDir returns the XDG data directory for relink
	DataDir() string
}

// Document is an open document known to the host. Linked documents show up
// here once their link is loaded.
type Document interface {
	// Title is the document name without its file extension.
	Title() string
	IsWorkshared() bool
	// Worksets returns every workset of the document, in table order.
	Worksets() []Workset
}

// LinkSource is the host capability surface the orchestrator drives. One
// implementation exists per host; the core never reaches around it.
type LinkSource interface {
	// Title and Path describe the host document itself.
	Title() string
	Path() string

	// Links enumerates the link types of the host document. Nested links
	// may be included; the orchestrator skips them.
	Links() ([]Link, error)

	// ExternalReference returns the user-visible path the link is bound to.
	// ok is false when the host has no reference for the link.
	ExternalReference(link Link) (path string, ok bool)

	OpenDocuments() ([]Document, error)
	IsLoaded(link Link) bool
	Reload(link Link) error

	// Relink binds link to the file at path, opening worksets as cfg says.
	Relink(link Link, path string, cfg WorksetConfig) error
}
