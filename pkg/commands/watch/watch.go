package watch

import (
	"context"

	"github.com/arthur-debert/relink/pkg/commands/run"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/arthur-debert/relink/pkg/watch"
)

// WatchOptions holds options for watch mode
type WatchOptions struct {
	Run run.RunOptions
	// OnRun is called after every completed run, e.g. to print a summary.
	OnRun func(*run.RunResult)
}

// Watch runs once, then reruns whenever a new link file appears in one of
// the Links Folders seen by the previous runs. It returns when ctx is done.
func Watch(ctx context.Context, opts WatchOptions) error {
	logger := logging.GetLogger("commands.watch")

	cfg := opts.Run.Config
	extension := ""
	debounce := watch.DefaultDebounce
	if cfg != nil {
		extension = cfg.Links.Extension
		debounce = cfg.Watch.Debounce
	}

	w, err := watch.New(func(context.Context) ([]string, error) {
		out, err := run.Run(opts.Run)
		if err != nil {
			return nil, err
		}
		if opts.OnRun != nil {
			opts.OnRun(out)
		}
		return out.Result.Folders(), nil
	}, watch.Options{Debounce: debounce, Extension: extension})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	err = w.Run(ctx)
	logger.Info().Int("runs", w.Runs()).Msg("Watch finished")
	return err
}
