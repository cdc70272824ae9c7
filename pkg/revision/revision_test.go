package revision

import (
	"testing"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     int
	}{
		{"simple", "Site-RVT-3-Linked.rvt", 3},
		{"higher", "Site-RVT-5-Linked.rvt", 5},
		{"leading zeros", "Site-RVT-007-Linked.rvt", 7},
		{"zero", "Site-RVT-0-Linked.rvt", 0},
		{"multi part base", "ACME-North-Tower-RVT-12-ARCH.rvt", 12},
		{"first marker wins", "A-RVT-2-B-RVT-9-C.rvt", 2},
		{"no marker", "Annex.rvt", 0},
		{"marker only inside a word", "ARVT-3-x.rvt", 0},
		{"lowercase marker is not a marker", "Site-rvt-3-Linked.rvt", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"not a number", "Site-RVT-x-Linked.rvt"},
		{"extension glued to number", "Site-RVT-5.rvt"},
		{"marker is last segment", "Site-RVT"},
		{"empty segment", "Site-RVT--Linked.rvt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.filename)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedRevision))
			assert.Equal(t, tt.filename, errors.GetErrorDetails(err)["filename"])
			assert.Equal(t, 0, got)
		})
	}
}

func TestParseLenient(t *testing.T) {
	assert.Equal(t, 4, ParseLenient("Site-RVT-4-Linked.rvt"))
	assert.Equal(t, 0, ParseLenient("Site-RVT-x-Linked.rvt"))
	assert.Equal(t, 0, ParseLenient("Annex.rvt"))
	assert.Equal(t, 0, ParseLenient(""))
}

func TestHasMarker(t *testing.T) {
	assert.True(t, HasMarker("Site-RVT-4-Linked.rvt"))
	assert.False(t, HasMarker("Annex.rvt"))
	assert.False(t, HasMarker("Site-RVT4.rvt"))
}

func TestFamilyPrefix(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Site-RVT-3-Linked.rvt", "Site"},
		{"ACME-North-Tower-RVT-12-ARCH.rvt", "ACME-North-Tower"},
		{"Annex.rvt", "Annex"},
		{"Annex", "Annex"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, FamilyPrefix(tt.filename))
		})
	}
}
