package config

import "time"

// Links holds the link selection and naming settings
type Links struct {
	// FolderMarker is the path segment that identifies a Links Folder
	FolderMarker string `koanf:"folder_marker"`
	// Extension of link files, including the leading dot
	Extension string `koanf:"extension"`
	// RequireMarker drops links whose name has no -RVT- segment
	RequireMarker bool `koanf:"require_marker"`
}

// Host holds host document settings
type Host struct {
	Manifest string `koanf:"manifest"`
}

// Report holds run log settings
type Report struct {
	Dir        string `koanf:"dir"`
	Viewer     string `koanf:"viewer"`
	OpenViewer bool   `koanf:"open_viewer"`
}

// History holds run history settings
type History struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Watch holds watch mode settings
type Watch struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Config is the main configuration structure
type Config struct {
	Links   Links   `koanf:"links"`
	Host    Host    `koanf:"host"`
	Report  Report  `koanf:"report"`
	History History `koanf:"history"`
	Watch   Watch   `koanf:"watch"`
}

// Default returns the embedded defaults, with no user or environment layers.
func Default() *Config {
	cfg, err := load(LoadOptions{SkipUser: true, SkipEnv: true})
	if err != nil {
		// Mirrors embedded/defaults.toml.
		return &Config{
			Links:   Links{FolderMarker: "Revit Links", Extension: ".rvt", RequireMarker: true},
			Report:  Report{OpenViewer: true},
			History: History{Enabled: true},
			Watch:   Watch{Debounce: 2 * time.Second},
		}
	}
	return cfg
}
