package watch

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 10 * time.Millisecond

func newTestWatcher(t *testing.T, run RunFunc) *Watcher {
	t.Helper()
	w, err := New(run, Options{Debounce: testDebounce, Extension: ".rvt"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	w.add = func(string) error { return nil }
	return w
}

// startLoop runs the event loop in the background and returns a stop func
// that cancels it and waits for it to return.
func startLoop(t *testing.T, w *Watcher, events chan fsnotify.Event) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, w.loop(ctx, events, errs))
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}

func created(name string) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: fsnotify.Create}
}

func TestLoop_DebounceCoalescesEvents(t *testing.T) {
	var calls atomic.Int32
	w := newTestWatcher(t, func(context.Context) ([]string, error) {
		calls.Add(1)
		return nil, nil
	})
	events := make(chan fsnotify.Event, 8)
	stop := startLoop(t, w, events)
	defer stop()

	events <- created("/p/Revit Links/Site-RVT-4-Linked.rvt")
	events <- created("/p/Revit Links/Site-RVT-5-Linked.rvt")
	events <- fsnotify.Event{Name: "/p/Revit Links/Site-RVT-5-Linked.rvt", Op: fsnotify.Write}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(5 * testDebounce)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoop_IgnoresIrrelevantEvents(t *testing.T) {
	var calls atomic.Int32
	w := newTestWatcher(t, func(context.Context) ([]string, error) {
		calls.Add(1)
		return nil, nil
	})
	events := make(chan fsnotify.Event, 8)
	stop := startLoop(t, w, events)
	defer stop()

	events <- created("/p/Revit Links/Tower_ReloadLinks_(2024-03-01 - 09-05-07).log")
	events <- fsnotify.Event{Name: "/p/Revit Links/Site-RVT-5-Linked.rvt", Op: fsnotify.Remove}
	events <- fsnotify.Event{Name: "/p/Revit Links/Site-RVT-5-Linked.rvt", Op: fsnotify.Chmod}

	time.Sleep(5 * testDebounce)
	assert.Zero(t, calls.Load())
}

func TestLoop_EventsDuringRunScheduleOneFollowUp(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	w := newTestWatcher(t, func(context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return nil, nil
	})
	events := make(chan fsnotify.Event, 8)
	stop := startLoop(t, w, events)
	defer stop()

	events <- created("/p/Revit Links/Site-RVT-4-Linked.rvt")
	<-started

	events <- created("/p/Revit Links/Site-RVT-5-Linked.rvt")
	events <- created("/p/Revit Links/Site-RVT-6-Linked.rvt")
	events <- created("/p/Revit Links/Site-RVT-7-Linked.rvt")
	close(release)

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)
	time.Sleep(5 * testDebounce)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLoop_FailedRunKeepsWatching(t *testing.T) {
	var calls atomic.Int32
	w := newTestWatcher(t, func(context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			return nil, stderrors.New("host unavailable")
		}
		return []string{"/p/Revit Links"}, nil
	})
	var added []string
	var mu sync.Mutex
	w.add = func(folder string) error {
		mu.Lock()
		defer mu.Unlock()
		added = append(added, folder)
		return nil
	}
	events := make(chan fsnotify.Event, 8)
	stop := startLoop(t, w, events)

	events <- created("/p/Revit Links/Site-RVT-4-Linked.rvt")
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	events <- created("/p/Revit Links/Site-RVT-5-Linked.rvt")
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)

	stop()
	assert.Equal(t, []string{"/p/Revit Links"}, added)
	assert.Equal(t, 2, w.Runs())
}

func TestRun_FirstRunErrorIsReturned(t *testing.T) {
	w := newTestWatcher(t, func(context.Context) ([]string, error) {
		return nil, stderrors.New("no links")
	})

	err := w.Run(context.Background())
	assert.EqualError(t, err, "no links")
	assert.Equal(t, 1, w.Runs())
}

func TestRun_WatchesFoldersUntilCancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	w := newTestWatcher(t, func(context.Context) ([]string, error) {
		cancel()
		return []string{dir}, nil
	})
	w.add = w.fw.Add

	require.NoError(t, w.Run(ctx))
	assert.Equal(t, []string{dir}, w.Watched())
}

func TestSync(t *testing.T) {
	w := newTestWatcher(t, nil)
	var added []string
	w.add = func(folder string) error {
		if folder == "/missing" {
			return stderrors.New("no such directory")
		}
		added = append(added, folder)
		return nil
	}

	w.sync([]string{"/a", "/b", "/a", "/missing"})
	w.sync([]string{"/b", "/c"})

	assert.Equal(t, []string{"/a", "/b", "/c"}, added)
	assert.ElementsMatch(t, []string{"/a", "/b", "/c"}, w.Watched())
}

func TestRelevant(t *testing.T) {
	w := newTestWatcher(t, nil)
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"created link", created("/p/A-RVT-2.rvt"), true},
		{"upper case extension", created("/p/A-RVT-2.RVT"), true},
		{"renamed link", fsnotify.Event{Name: "/p/A-RVT-2.rvt", Op: fsnotify.Rename}, true},
		{"written link", fsnotify.Event{Name: "/p/A-RVT-2.rvt", Op: fsnotify.Write}, true},
		{"removed link", fsnotify.Event{Name: "/p/A-RVT-2.rvt", Op: fsnotify.Remove}, false},
		{"other extension", created("/p/notes.txt"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}
