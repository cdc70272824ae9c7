// Package paths provides centralized path handling for relink.
// It implements XDG Base Directory specification compliance for the
// application's own files: user config, run history and the debug log.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/relink/pkg/types"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for relink
	EnvConfigDir = "RELINK_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for relink
	EnvStateDir = "RELINK_STATE_DIR"

	// EnvDataDir overrides the XDG data directory for relink
	EnvDataDir = "RELINK_DATA_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for relink-specific files
	AppDirName = "relink"

	// HistoryFile is the run history database inside the state dir
	HistoryFile = "history.db"
)

// Paths exposes the directories relink reads and writes outside the
// host document's own folders.
type Paths interface {
	types.Pather
	HistoryPath() string
}

type paths struct {
	configDir string
	stateDir  string
	dataDir   string
}

// New resolves the XDG directories, respecting environment overrides.
func New() Paths {
	p := &paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.dataDir = ExpandHome(dir)
	} else {
		p.dataDir = filepath.Join(xdg.DataHome, AppDirName)
	}

	return p
}

func (p *paths) ConfigDir() string { return p.configDir }

func (p *paths) StateDir() string { return p.stateDir }

func (p *paths) DataDir() string { return p.dataDir }

func (p *paths) HistoryPath() string {
	return filepath.Join(p.stateDir, HistoryFile)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// Resolve makes path absolute against base after expanding ~.
func Resolve(base, path string) string {
	path = ExpandHome(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
