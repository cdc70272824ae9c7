// Package scanner finds the newest revision of a link file in its folder.
package scanner

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/revision"
	"github.com/arthur-debert/relink/pkg/types"
)

// Options configures which folders and files a Scanner considers.
type Options struct {
	// FolderMarker must appear in a folder path for it to be scanned.
	FolderMarker string
	// Extension restricts candidates to link files, e.g. ".rvt".
	Extension string
}

// Result describes the outcome of a folder scan.
type Result struct {
	Folder string
	// Applicable is false when the folder is outside the Links Folder.
	Applicable bool
	// Found is false when no file of the family exists in the folder.
	Found bool
	// Best is the file name holding the highest revision.
	Best     string
	Revision int
	// Candidates lists the matching file names in enumeration order.
	Candidates []string
}

// Path returns the full path of the best candidate, or "" when none was found.
func (r Result) Path() string {
	if !r.Found {
		return ""
	}
	return filepath.Join(r.Folder, r.Best)
}

// Scanner lists link folders through a types.FS.
type Scanner struct {
	fs   types.FS
	opts Options
}

// New creates a scanner reading through fsys.
func New(fsys types.FS, opts Options) *Scanner {
	return &Scanner{fs: fsys, opts: opts}
}

// FindLatest returns the file in folder with the highest revision of the
// family linkFilename belongs to. On equal revisions the later enumerated
// file wins. Folders outside the Links Folder are reported as not
// applicable rather than as an error.
func (s *Scanner) FindLatest(folder, linkFilename string) (Result, error) {
	logger := logging.GetLogger("scanner").With().
		Str("folder", folder).
		Str("link", linkFilename).
		Logger()

	result := Result{Folder: folder}
	if s.opts.FolderMarker == "" || !strings.Contains(folder, s.opts.FolderMarker) {
		logger.Trace().Msg("Folder is outside the links folder, not scanning")
		return result, nil
	}
	result.Applicable = true

	entries, err := s.fs.ReadDir(folder)
	if err != nil {
		return result, errors.Wrapf(err, errors.ErrScanFailed, "failed to list %s", folder).
			WithDetail("folder", folder)
	}

	pattern := FamilyPattern(linkFilename, s.opts.Extension)
	highest := -1
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ok, _ := path.Match(pattern, strings.ToLower(name)); !ok {
			continue
		}
		result.Candidates = append(result.Candidates, name)

		rev, err := revision.Parse(name)
		if err != nil {
			logger.Debug().Err(err).Str("candidate", name).Msg("Malformed revision, reading as 0")
		}
		if rev >= highest {
			highest = rev
			result.Best = name
			result.Revision = rev
		}
	}

	result.Found = result.Best != ""
	logger.Debug().
		Int("candidates", len(result.Candidates)).
		Str("best", result.Best).
		Int("revision", result.Revision).
		Msg("Folder scanned")
	return result, nil
}

// FamilyPattern returns the lower-case glob matching every revision of
// linkFilename: its family prefix, anything, then the extension.
func FamilyPattern(linkFilename, extension string) string {
	prefix := escapeGlob(revision.FamilyPrefix(linkFilename))
	return strings.ToLower(prefix + "*" + extension)
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
