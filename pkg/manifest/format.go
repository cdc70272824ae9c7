package manifest

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/relink/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a manifest serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatXML  Format = "xml"
)

// FormatFor picks the format from the extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".xml":
		return FormatXML, nil
	default:
		return "", errors.Newf(errors.ErrManifestFormat,
			"unsupported manifest extension %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	case FormatTOML:
		err = toml.Unmarshal(data, &m)
	case FormatXML:
		err = decodeXML(data, &m)
	default:
		return nil, errors.Newf(errors.ErrManifestFormat, "unknown manifest format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s manifest", format)
	}
	if err := m.assignLinkIDs(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Encode serializes m in the given format.
func Encode(m *Manifest, format Format) ([]byte, error) {
	var data []byte
	var err error
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(m)
	case FormatTOML:
		data, err = toml.Marshal(m)
	case FormatXML:
		data, err = encodeXML(m)
	default:
		return nil, errors.Newf(errors.ErrManifestFormat, "unknown manifest format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestWrite, "failed to encode %s manifest", format)
	}
	return data, nil
}
