// Package config handles configuration management for relink.
// Settings are layered with koanf: embedded defaults, the user config file
// under the XDG config dir, a project .relink.toml (or an explicit --config
// file), and finally RELINK_ environment variables.
package config
