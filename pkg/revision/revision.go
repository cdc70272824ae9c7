package revision

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/relink/pkg/errors"
)

// Marker is the file name segment that precedes the revision number.
const Marker = "RVT"

// Separator splits file name segments.
const Separator = "-"

// Unrevised is the revision of a file that carries no marker.
const Unrevised = 0

// Parse extracts the revision from filename. The segment that follows the
// first RVT segment must be an integer; otherwise a MALFORMED_REVISION error
// is returned.
func Parse(filename string) (int, error) {
	segments := strings.Split(filename, Separator)
	for i, segment := range segments {
		if segment != Marker {
			continue
		}
		if i+1 >= len(segments) {
			return Unrevised, errors.Newf(errors.ErrMalformedRevision,
				"%s has no revision after %s", filename, Marker).
				WithDetail("filename", filename)
		}
		n, err := strconv.Atoi(segments[i+1])
		if err != nil || n < 0 {
			return Unrevised, errors.Newf(errors.ErrMalformedRevision,
				"revision segment %q in %s is not a number", segments[i+1], filename).
				WithDetail("filename", filename).
				WithDetail("segment", segments[i+1])
		}
		return n, nil
	}
	return Unrevised, nil
}

// ParseLenient is Parse with malformed markers read as revision 0.
func ParseLenient(filename string) int {
	n, err := Parse(filename)
	if err != nil {
		return Unrevised
	}
	return n
}

// HasMarker reports whether filename contains the -RVT- segment.
func HasMarker(filename string) bool {
	return strings.Contains(filename, Separator+Marker+Separator)
}

// FamilyPrefix returns the part of filename shared by every revision of the
// same file: everything before the first -RVT-, or the name without its
// extension when there is no marker.
func FamilyPrefix(filename string) string {
	if idx := strings.Index(filename, Separator+Marker+Separator); idx >= 0 {
		return filename[:idx]
	}
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
