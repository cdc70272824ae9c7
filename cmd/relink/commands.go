package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/relink/internal/version"
	"github.com/arthur-debert/relink/pkg/commands/run"
	"github.com/arthur-debert/relink/pkg/commands/runs"
	"github.com/arthur-debert/relink/pkg/commands/watch"
	"github.com/arthur-debert/relink/pkg/config"
	"github.com/arthur-debert/relink/pkg/filesystem"
	"github.com/arthur-debert/relink/pkg/history"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/ui"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: MsgRunShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, opts)
		},
	}
}

func newWatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: MsgWatchShort,
		Long:  MsgWatchLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := ui.NewRenderer(ui.FormatAuto, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			store := openHistory(opts)
			if store != nil {
				defer func() { _ = store.Close() }()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return watch.Watch(ctx, watch.WatchOptions{
				Run: runOptions(opts, store),
				OnRun: func(out *run.RunResult) {
					_ = renderer.RenderSummary(ui.Summary{Result: out.Result, LogPath: out.LogPath})
				},
			})
		},
	}
}

func newGenConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
			return err
		},
	}
}

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: MsgHistoryShort,
		Long:  MsgHistoryLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := ui.NewRenderer(ui.FormatAuto, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				detail, err := runs.Show(runs.ShowOptions{HistoryPath: opts.historyPath(), ID: args[0]})
				if err != nil {
					return err
				}
				return renderer.RenderRun(detail.Run, detail.Entries)
			}

			list, err := runs.List(runs.ListOptions{HistoryPath: opts.historyPath(), Limit: limit})
			if err != nil {
				return err
			}
			return renderer.RenderHistory(list)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", runs.DefaultLimit, MsgFlagLimit)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}

func runOnce(cmd *cobra.Command, opts *globalOptions) error {
	store := openHistory(opts)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	out, err := run.Run(runOptions(opts, store))
	if err != nil {
		return err
	}

	renderer, err := ui.NewRenderer(ui.FormatAuto, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderSummary(ui.Summary{Result: out.Result, LogPath: out.LogPath})
}

func runOptions(opts *globalOptions, store *history.Store) run.RunOptions {
	return run.RunOptions{
		Config:       opts.config,
		FS:           filesystem.NewOS(),
		ManifestPath: opts.manifest,
		DryRun:       opts.dryRun,
		NoViewer:     opts.noViewer,
		History:      store,
	}
}

// openHistory opens the history database when enabled. Open failures are
// logged and the run goes unrecorded.
func openHistory(opts *globalOptions) *history.Store {
	if !opts.config.History.Enabled {
		return nil
	}
	store, err := history.Open(opts.historyPath())
	if err != nil {
		logger := logging.GetLogger("cmd")
		logger.Warn().Err(err).Msg("Run history disabled")
		return nil
	}
	return store
}

