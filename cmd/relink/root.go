package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/relink/internal/version"
	"github.com/arthur-debert/relink/pkg/config"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/paths"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags plus the configuration they load.
type globalOptions struct {
	verbosity  int
	configFile string
	manifest   string
	dryRun     bool
	noViewer   bool

	paths  paths.Paths
	config *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "relink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.manifest, "manifest", "", MsgFlagManifest)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&opts.noViewer, "no-viewer", false, MsgFlagNoViewer)

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newHistoryCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func (o *globalOptions) load() error {
	o.paths = paths.New()

	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	cfg, err := config.Load(config.LoadOptions{
		ConfigDir:  o.paths.ConfigDir(),
		WorkDir:    wd,
		ConfigFile: o.configFile,
	})
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	o.config = cfg

	log.Debug().
		Str("configDir", o.paths.ConfigDir()).
		Str("manifest", cfg.Host.Manifest).
		Str("folderMarker", cfg.Links.FolderMarker).
		Msg("Configuration loaded")
	return nil
}

// historyPath is history.path when set, else the database in the state dir.
func (o *globalOptions) historyPath() string {
	if o.config.History.Path != "" {
		return paths.ExpandHome(o.config.History.Path)
	}
	return o.paths.HistoryPath()
}
