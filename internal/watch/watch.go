// Package watch reruns generation when schema documents change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/hanpama/sdlgen/internal/eventbus"
	"github.com/hanpama/sdlgen/internal/events"
	"github.com/hanpama/sdlgen/internal/ir"
)

// DefaultDebounce is how long the watcher waits for a burst of changes to
// settle before calling back.
const DefaultDebounce = 200 * time.Millisecond

// Watcher observes a schema directory tree.
type Watcher struct {
	root     string
	opts     []ir.DiscoveryOption
	debounce time.Duration
	logger   zerolog.Logger
	onChange func(ctx context.Context, files []string)
	watcher  *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithDiscoveryOptions restricts reactions to files discovery would load.
func WithDiscoveryOptions(opts ...ir.DiscoveryOption) Option {
	return func(w *Watcher) { w.opts = opts }
}

// WithLogger sets the logger for watcher errors.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

// New watches root and every directory below it. onChange receives the
// changed schema files, sorted and deduplicated, once per settled burst.
func New(root string, onChange func(ctx context.Context, files []string), opts ...Option) (*Watcher, error) {
	w := &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		logger:   zerolog.Nop(),
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(w)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w.watcher = watcher
	if _, err := w.addTree(root); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and its subdirectories and returns the schema files
// already present below dir.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if ir.IsSchemaFile(path, w.opts...) {
				files = append(files, path)
			}
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch directory %s: %w", path, err)
		}
		return nil
	})
	return files, err
}

// Run dispatches changes until ctx is cancelled. The callback runs on the
// Run goroutine, so a slow generation delays, and merges, later bursts.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	pending := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// a directory moved into the tree carries files no event reports
					files, err := w.addTree(event.Name)
					if err != nil {
						w.logger.Error().Err(err).Msg("file watcher error")
					}
					for _, f := range files {
						pending[f] = true
					}
					if len(files) > 0 {
						timer.Reset(w.debounce)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !ir.IsSchemaFile(event.Name, w.opts...) {
				continue
			}
			w.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("schema file changed")
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			slices.Sort(files)
			clear(pending)
			eventbus.Publish(ctx, events.WatchTriggered{Files: files})
			w.onChange(ctx, files)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("file watcher error")
		}
	}
}
