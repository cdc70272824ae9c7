// Package logfile writes run reports next to the host document and opens
// them for the operator.
package logfile

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/types"
)

// Suffix separates the model base name from the timestamp.
const Suffix = "_ReloadLinks_"

// Extension of every log file.
const Extension = ".log"

// TimestampLayout is the timestamp format inside the log file name.
const TimestampLayout = "(2006-01-02 - 15-04-05)"

// BaseName returns title up to its last underscore, or all of it when it
// has none. Tower_Central becomes Tower.
func BaseName(title string) string {
	if idx := strings.LastIndex(title, "_"); idx >= 0 {
		return title[:idx]
	}
	return title
}

// FileName builds the log file name for a run of title started at t.
func FileName(title string, t time.Time) string {
	return BaseName(title) + Suffix + t.Format(TimestampLayout) + Extension
}

// Dir picks the folder the log goes to: the configured directory when set,
// else the folder of the host document.
func Dir(configured, documentPath string) string {
	if configured != "" {
		return configured
	}
	return filepath.Dir(documentPath)
}

// Write stores text as the log for title in dir and returns its path.
func Write(fsys types.FS, dir, title string, t time.Time, text string) (string, error) {
	logger := logging.GetLogger("logfile")

	path := filepath.Join(dir, FileName(title, t))
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrLogWrite, "failed to create log directory %s", dir).
			WithDetail("path", dir)
	}
	if err := fsys.WriteFile(path, []byte(text), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrLogWrite, "failed to write log %s", path).
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Int("bytes", len(text)).Msg("Run log written")
	return path, nil
}
