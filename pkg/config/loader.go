package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "RELINK_"
	// UserConfigFile is the file name looked up in the config dir
	UserConfigFile = "config.toml"
	// ProjectConfigFile is the file name looked up in the working dir
	ProjectConfigFile = ".relink.toml"
)

// LoadOptions selects the layers Load reads
type LoadOptions struct {
	// ConfigDir is the user config directory, usually $XDG_CONFIG_HOME/relink
	ConfigDir string
	// WorkDir is searched for .relink.toml when ConfigFile is empty
	WorkDir string
	// ConfigFile is an explicit config file; it must exist
	ConfigFile string

	SkipUser bool
	SkipEnv  bool
}

// Load builds the configuration from defaults, files and environment.
func Load(opts LoadOptions) (*Config, error) {
	return load(opts)
}

func load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	if !opts.SkipUser {
		// 2. User config
		if opts.ConfigDir != "" {
			if err := loadIfExists(k, filepath.Join(opts.ConfigDir, UserConfigFile)); err != nil {
				return nil, err
			}
		}

		// 3. Project or explicit config
		if opts.ConfigFile != "" {
			if _, err := os.Stat(opts.ConfigFile); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.ConfigFile)
			}
			if err := loadIfExists(k, opts.ConfigFile); err != nil {
				return nil, err
			}
		} else if opts.WorkDir != "" {
			if err := loadIfExists(k, filepath.Join(opts.WorkDir, ProjectConfigFile)); err != nil {
				return nil, err
			}
		}
	}

	// 4. Environment, RELINK_LINKS__FOLDER_MARKER -> links.folder_marker
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config %s", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
	}
	return nil
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Links.FolderMarker) == "" {
		return errors.New(errors.ErrConfigValid, "links.folder_marker must not be empty")
	}
	if !strings.HasPrefix(cfg.Links.Extension, ".") || len(cfg.Links.Extension) < 2 {
		return errors.Newf(errors.ErrConfigValid, "links.extension %q must start with a dot", cfg.Links.Extension).
			WithDetail("extension", cfg.Links.Extension)
	}
	if cfg.Watch.Debounce < 0 {
		return errors.New(errors.ErrConfigValid, "watch.debounce must not be negative")
	}
	return nil
}
