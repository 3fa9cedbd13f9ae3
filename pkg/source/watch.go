package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/carousel/pkg/log"
)

// Event is sent to subscribers after a watched file was reloaded.
type Event struct {
	Err   error
	Cards []Card
}

// Watcher reloads a file-backed [Loader] whenever the file is written.
type Watcher struct {
	loader    *Loader
	watcher   *fsnotify.Watcher
	path      string
	listeners []chan<- Event
}

// NewWatcher watches the file at path and reloads it with loader.
//
// The parent directory is watched so that editors replacing the file
// atomically are handled.
func NewWatcher(loader *Loader, path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	err = w.Add(filepath.Dir(abs))
	if err != nil {
		closeErr := w.Close()
		if closeErr != nil {
			slog.Error("close watcher", slog.Any("err", closeErr))
		}

		return nil, fmt.Errorf("add path to watcher: %w", err)
	}

	return &Watcher{loader: loader, watcher: w, path: abs}, nil
}

// Subscribe registers ch to receive reload events.
// It must be called before [Watcher.Run].
func (w *Watcher) Subscribe(ch chan<- Event) {
	w.listeners = append(w.listeners, ch)
}

// Run reloads on file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	logger := log.WithContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(evt.Name) != w.path {
				continue
			}

			// Ignore events that are not related to file content changes.
			if evt.Has(fsnotify.Chmod) || evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename) {
				continue
			}

			logger.DebugContext(ctx, "source changed", slog.String("event", evt.String()))

			cards, err := w.loader.Load(ctx)
			w.broadcast(ctx, Event{Cards: cards, Err: err})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			w.broadcast(ctx, Event{Err: err})
		}
	}
}

func (w *Watcher) broadcast(ctx context.Context, evt Event) {
	for _, ch := range w.listeners {
		select {
		case ch <- evt:
		case <-ctx.Done():
			return
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() {
	err := w.watcher.Close()
	if err != nil {
		slog.Error("close watcher", slog.Any("err", err))
	}
}
