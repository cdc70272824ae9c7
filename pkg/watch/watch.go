// Package watch reruns relink when new link revisions land in a Links
// Folder. Runs never overlap: changes seen while a run is in progress
// schedule a single follow-up run once the debounce period has passed.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/relink/pkg/errors"
	"github.com/arthur-debert/relink/pkg/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Options.Debounce is not positive.
const DefaultDebounce = 2 * time.Second

// RunFunc performs one relink run and returns the folders worth watching.
type RunFunc func(ctx context.Context) ([]string, error)

// Options configures a Watcher.
type Options struct {
	Debounce time.Duration
	// Extension limits triggering files, e.g. ".rvt". Empty matches all.
	Extension string
}

// Watcher drives repeated runs from filesystem events.
type Watcher struct {
	run  RunFunc
	opts Options

	fw      *fsnotify.Watcher
	add     func(string) error
	watched map[string]bool
	runs    int
}

// New creates a watcher around run.
func New(run RunFunc, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatch, "failed to create file watcher")
	}
	return &Watcher{
		run:     run,
		opts:    opts,
		fw:      fw,
		add:     fw.Add,
		watched: make(map[string]bool),
	}, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

// Runs returns how many runs completed or failed so far.
func (w *Watcher) Runs() int { return w.runs }

// Watched returns the folders currently being watched.
func (w *Watcher) Watched() []string {
	folders := make([]string, 0, len(w.watched))
	for folder := range w.watched {
		folders = append(folders, folder)
	}
	return folders
}

// Run performs the first run, then keeps rerunning on changes until ctx
// is cancelled. Only a failing first run is returned as an error.
func (w *Watcher) Run(ctx context.Context) error {
	folders, err := w.run(ctx)
	w.runs++
	if err != nil {
		return err
	}
	w.sync(folders)
	return w.loop(ctx, w.fw.Events, w.fw.Errors)
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	logger := logging.GetLogger("watch")
	logger.Info().Int("folders", len(w.watched)).Dur("debounce", w.opts.Debounce).Msg("Watching for new revisions")

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Int("runs", w.runs).Msg("Watch stopped")
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Link folder changed")
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("File watcher error")

		case <-fire:
			fire = nil
			folders, err := w.run(ctx)
			w.runs++
			if err != nil {
				logger.Error().Err(err).Msg("Relink run failed")
				continue
			}
			w.sync(folders)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Write) {
		return false
	}
	if w.opts.Extension == "" {
		return true
	}
	return strings.EqualFold(filepath.Ext(event.Name), w.opts.Extension)
}

// sync starts watching folders not seen before. Watched folders stay
// watched for the whole session.
func (w *Watcher) sync(folders []string) {
	logger := logging.GetLogger("watch")
	for _, folder := range folders {
		if w.watched[folder] {
			continue
		}
		if err := w.add(folder); err != nil {
			logger.Warn().Err(err).Str("folder", folder).Msg("Cannot watch folder")
			continue
		}
		w.watched[folder] = true
		logger.Debug().Str("folder", folder).Msg("Watching folder")
	}
}
