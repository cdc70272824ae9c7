package scanner

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/filesystem"
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linksDir = "/projects/tower/Revit Links"

func newFS(t *testing.T, dir string, names ...string) types.FS {
	t.Helper()
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, fsys.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
	return fsys
}

func newScanner(fsys types.FS) *Scanner {
	return New(fsys, Options{FolderMarker: "Revit Links", Extension: ".rvt"})
}

func TestFindLatest_HighestRevisionWins(t *testing.T) {
	fsys := newFS(t, linksDir,
		"Site-RVT-3-Linked.rvt",
		"Site-RVT-5-Linked.rvt",
		"Site-RVT-4-Linked.rvt",
	)

	result, err := newScanner(fsys).FindLatest(linksDir, "Site-RVT-3-Linked.rvt")
	require.NoError(t, err)

	assert.True(t, result.Applicable)
	assert.True(t, result.Found)
	assert.Equal(t, "Site-RVT-5-Linked.rvt", result.Best)
	assert.Equal(t, 5, result.Revision)
	assert.Equal(t, filepath.Join(linksDir, "Site-RVT-5-Linked.rvt"), result.Path())
	assert.Len(t, result.Candidates, 3)
}

func TestFindLatest_NumericNotLexicalOrder(t *testing.T) {
	fsys := newFS(t, linksDir, "Site-RVT-10-Linked.rvt", "Site-RVT-9-Linked.rvt")

	result, err := newScanner(fsys).FindLatest(linksDir, "Site-RVT-9-Linked.rvt")
	require.NoError(t, err)
	assert.Equal(t, "Site-RVT-10-Linked.rvt", result.Best)
	assert.Equal(t, 10, result.Revision)
}

func TestFindLatest_TieGoesToLaterEnumerated(t *testing.T) {
	// Directory listings are sorted by name, so "B" enumerates after "A".
	fsys := newFS(t, linksDir,
		"Site-RVT-5-A.rvt",
		"Site-RVT-5-B.rvt",
		"Site-RVT-2-C.rvt",
	)

	result, err := newScanner(fsys).FindLatest(linksDir, "Site-RVT-2-C.rvt")
	require.NoError(t, err)
	assert.Equal(t, "Site-RVT-5-B.rvt", result.Best)
	assert.Equal(t, 5, result.Revision)
}

func TestFindLatest_FiltersFamilyAndExtension(t *testing.T) {
	fsys := newFS(t, linksDir,
		"Site-RVT-3-Linked.rvt",
		"Site-RVT-9-Linked.dwg",
		"Structure-RVT-8-Linked.rvt",
		"Site-RVT-4-Linked.RVT",
	)
	require.NoError(t, fsys.MkdirAll(filepath.Join(linksDir, "Site-RVT-99-Old.rvt"), 0755))

	result, err := newScanner(fsys).FindLatest(linksDir, "Site-RVT-3-Linked.rvt")
	require.NoError(t, err)

	assert.Equal(t, []string{"Site-RVT-3-Linked.rvt", "Site-RVT-4-Linked.RVT"}, result.Candidates)
	assert.Equal(t, "Site-RVT-4-Linked.RVT", result.Best, "extension match is case-insensitive")
}

func TestFindLatest_NoMarkerLink(t *testing.T) {
	t.Run("only itself", func(t *testing.T) {
		fsys := newFS(t, linksDir, "Annex.rvt")

		result, err := newScanner(fsys).FindLatest(linksDir, "Annex.rvt")
		require.NoError(t, err)
		assert.Equal(t, "Annex.rvt", result.Best)
		assert.Equal(t, 0, result.Revision)
	})

	t.Run("revised sibling", func(t *testing.T) {
		fsys := newFS(t, linksDir, "Annex.rvt", "Annex-RVT-2-Shell.rvt")

		result, err := newScanner(fsys).FindLatest(linksDir, "Annex.rvt")
		require.NoError(t, err)
		assert.Equal(t, "Annex-RVT-2-Shell.rvt", result.Best)
		assert.Equal(t, 2, result.Revision)
	})
}

func TestFindLatest_MalformedCandidatesReadAsZero(t *testing.T) {
	fsys := newFS(t, linksDir, "Site-RVT-x-Linked.rvt")

	result, err := newScanner(fsys).FindLatest(linksDir, "Site-RVT-1-Linked.rvt")
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "Site-RVT-x-Linked.rvt", result.Best)
	assert.Equal(t, 0, result.Revision)
}

func TestFindLatest_NoCandidates(t *testing.T) {
	fsys := newFS(t, linksDir, "Other-RVT-1-Linked.rvt")

	result, err := newScanner(fsys).FindLatest(linksDir, "Site-RVT-3-Linked.rvt")
	require.NoError(t, err)
	assert.True(t, result.Applicable)
	assert.False(t, result.Found)
	assert.Empty(t, result.Best)
	assert.Empty(t, result.Path())
}

func TestFindLatest_OutsideLinksFolder(t *testing.T) {
	fsys := newFS(t, "/projects/tower/Linked", "Site-RVT-5-Linked.rvt")

	result, err := newScanner(fsys).FindLatest("/projects/tower/Linked", "Site-RVT-3-Linked.rvt")
	require.NoError(t, err)
	assert.False(t, result.Applicable)
	assert.False(t, result.Found)
}

func TestFindLatest_UnreadableFolder(t *testing.T) {
	fsys := filesystem.NewMemory()

	_, err := newScanner(fsys).FindLatest(linksDir, "Site-RVT-3-Linked.rvt")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScanFailed))
}

func TestFamilyPattern(t *testing.T) {
	assert.Equal(t, "site*.rvt", FamilyPattern("Site-RVT-3-Linked.rvt", ".rvt"))
	assert.Equal(t, "annex*.rvt", FamilyPattern("Annex.rvt", ".rvt"))
	assert.Equal(t, `tower\[a\]*.rvt`, FamilyPattern("Tower[A]-RVT-1-x.rvt", ".rvt"))
}

func TestFindLatest_GlobCharactersInName(t *testing.T) {
	fsys := newFS(t, linksDir, "Tower[A]-RVT-1-x.rvt", "Tower[A]-RVT-2-x.rvt", "TowerA-RVT-9-x.rvt")

	result, err := newScanner(fsys).FindLatest(linksDir, "Tower[A]-RVT-1-x.rvt")
	require.NoError(t, err)
	assert.Equal(t, "Tower[A]-RVT-2-x.rvt", result.Best)
}
