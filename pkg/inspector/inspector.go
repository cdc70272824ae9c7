// Package inspector derives the per-link metadata a relink run works from.
package inspector

import (
	"path/filepath"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
)

// Inspector queries a link source for link state.
type Inspector struct {
	source types.LinkSource
	index  types.DocumentIndex
}

// New creates an inspector over source, resolving documents through index.
func New(source types.LinkSource, index types.DocumentIndex) *Inspector {
	return &Inspector{source: source, index: index}
}

// Inspect returns the name, folder, load state and open document of link.
// Problems are returned as diagnostics; inspection never fails.
func (i *Inspector) Inspect(link types.Link) (types.LinkInfo, []types.Diagnostic) {
	logger := logging.GetLogger("inspector").With().Str("link", link.Name).Logger()

	var diags []types.Diagnostic
	info := types.LinkInfo{Name: link.Name}

	if link.Name == "" {
		// Nameless links are reported by host id.
		diags = append(diags, types.Diagnostic{
			Link:    "id " + link.ID,
			Code:    string(errors.ErrInvalidInput),
			Message: "link has no name",
		})
	}

	info.Folder = i.Folder(link)
	if info.Folder == "" {
		logger.Warn().Msg("Link has no external reference")
		diags = append(diags, types.Diagnostic{
			Link:    link.Name,
			Code:    string(errors.ErrUnresolvedReference),
			Message: "link has no external file reference",
		})
	}

	info.Loaded = i.source.IsLoaded(link)

	if doc, ok := i.index.Lookup(link.Name); ok {
		info.Document = doc
	}

	logger.Trace().
		Str("folder", info.Folder).
		Bool("loaded", info.Loaded).
		Bool("document", info.Document != nil).
		Msg("Link inspected")
	return info, diags
}

// Folder returns the absolute directory of the file link is bound to, or ""
// when the host has no external reference for it. Relative references are
// resolved against the host document's folder.
func (i *Inspector) Folder(link types.Link) string {
	ref, ok := i.source.ExternalReference(link)
	if !ok || ref == "" {
		return ""
	}
	if !filepath.IsAbs(ref) {
		base := filepath.Dir(i.source.Path())
		ref = filepath.Join(base, ref)
	}
	return filepath.Dir(filepath.Clean(ref))
}
