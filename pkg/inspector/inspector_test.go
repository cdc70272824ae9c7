package inspector

import (
	"testing"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/testutil"
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	source := testutil.NewFakeSource("Tower_Central", "/projects/tower/Tower_Central.rvt")
	link := source.AddLink("Site-RVT-3-Linked.rvt", "/projects/tower/Revit Links/Site-RVT-3-Linked.rvt", true)
	doc := &testutil.FakeDocument{Name: "Site-RVT-3-Linked", Shared: true}
	source.AddDocument(doc)

	docs, err := source.OpenDocuments()
	require.NoError(t, err)

	info, diags := New(source, types.NewDocumentIndex(docs)).Inspect(link)

	assert.Empty(t, diags)
	assert.Equal(t, "Site-RVT-3-Linked.rvt", info.Name)
	assert.Equal(t, "/projects/tower/Revit Links", info.Folder)
	assert.True(t, info.Loaded)
	assert.Same(t, doc, info.Document)
}

func TestInspect_NoDocument(t *testing.T) {
	source := testutil.NewFakeSource("Tower_Central", "/projects/tower/Tower_Central.rvt")
	link := source.AddLink("Site-RVT-3-Linked.rvt", "/projects/tower/Revit Links/Site-RVT-3-Linked.rvt", false)

	info, diags := New(source, types.NewDocumentIndex(nil)).Inspect(link)

	assert.Empty(t, diags)
	assert.False(t, info.Loaded)
	assert.Nil(t, info.Document)
}

func TestInspect_UnresolvedReference(t *testing.T) {
	source := testutil.NewFakeSource("Tower_Central", "/projects/tower/Tower_Central.rvt")
	link := source.AddLink("Ghost-RVT-1-Linked.rvt", "", true)

	info, diags := New(source, types.NewDocumentIndex(nil)).Inspect(link)

	assert.Equal(t, "", info.Folder)
	require.Len(t, diags, 1)
	assert.Equal(t, "Ghost-RVT-1-Linked.rvt", diags[0].Link)
	assert.Equal(t, string(errors.ErrUnresolvedReference), diags[0].Code)
}

func TestInspect_EmptyName(t *testing.T) {
	source := testutil.NewFakeSource("Tower_Central", "/projects/tower/Tower_Central.rvt")
	link := types.Link{ID: "42"}
	source.LinkList = append(source.LinkList, link)
	source.References["42"] = "/projects/tower/Revit Links/x.rvt"

	_, diags := New(source, types.NewDocumentIndex(nil)).Inspect(link)

	require.Len(t, diags, 1)
	assert.Equal(t, string(errors.ErrInvalidInput), diags[0].Code)
	assert.Equal(t, "id 42", diags[0].Link)
}

func TestFolder_RelativeReference(t *testing.T) {
	source := testutil.NewFakeSource("Tower_Central", "/projects/tower/Tower_Central.rvt")
	link := source.AddLink("Site-RVT-3-Linked.rvt", "Revit Links/Site-RVT-3-Linked.rvt", true)

	assert.Equal(t, "/projects/tower/Revit Links", New(source, nil).Folder(link))
}
