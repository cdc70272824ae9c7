package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/relink/pkg/filesystem"
	"github.com/arthur-debert/relink/pkg/types"
)

// LinksFolder creates dir in a fresh in-memory filesystem holding one file
// per name. The file content is the name itself.
func LinksFolder(t *testing.T, dir string, names ...string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	AddFiles(t, fsys, dir, names...)
	return fsys
}

// AddFiles writes one file per name into dir, creating dir when missing.
func AddFiles(t *testing.T, fsys types.FS, dir string, names ...string) {
	t.Helper()
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, name := range names {
		if err := fsys.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}
