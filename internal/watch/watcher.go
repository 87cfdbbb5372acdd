// Package watch rebuilds a site whenever its sources change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite-commonmark/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite-commonmark/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 300 * time.Millisecond

// RebuildFunc performs one build. Errors are logged and watching continues.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors docs_dir and the config file and calls a RebuildFunc,
// debounced, after they change. Rebuilds never overlap.
type Watcher struct {
	docsDir    string
	configPath string
	rebuild    RebuildFunc
	watcher    *fsnotify.Watcher
	debounce   time.Duration
	logger     *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New starts watching docsDir (recursively) and, when configPath is not
// empty, the directory holding the config file.
func New(docsDir, configPath string, rebuild RebuildFunc, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to create file watcher").Build()
	}

	w := &Watcher{
		rebuild:  rebuild,
		watcher:  fw,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.docsDir, err = filepath.Abs(docsDir); err != nil {
		_ = fw.Close()
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve docs_dir").Build()
	}
	if err := w.addTree(w.docsDir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	if configPath != "" {
		if w.configPath, err = filepath.Abs(configPath); err != nil {
			_ = fw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve config path").Build()
		}
		// Watching the directory survives editors that replace the file.
		if err := fw.Add(filepath.Dir(w.configPath)); err != nil {
			_ = fw.Close()
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to watch config directory").
				WithContext("path", w.configPath).
				Build()
		}
	}
	return w, nil
}

// addTree watches root and every non-hidden directory below it.
func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
			WithContext("path", root).
			Build()
	}
	return nil
}

// Run processes file events until ctx is done. It closes the underlying
// watcher on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	w.logger.Info("Watching for changes", logfields.Path(w.docsDir))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				w.watchIfDir(event.Name)
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))

		case <-timer.C:
			start := time.Now()
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("Rebuild failed", logfields.Error(err))
				continue
			}
			w.logger.Info("Rebuild finished", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
		}
	}
}

// relevant reports whether an event should trigger a rebuild: a change
// below docs_dir outside hidden paths, or any change of the config file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.configPath != "" && event.Name == w.configPath {
		return true
	}
	rel, err := filepath.Rel(w.docsDir, event.Name)
	if err != nil || !filepath.IsLocal(rel) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if isHidden(part) {
			return false
		}
	}
	return true
}

func (w *Watcher) watchIfDir(path string) {
	if err := w.addTree(path); err != nil {
		w.logger.Warn("Could not watch new directory", logfields.Path(path), logfields.Error(err))
	}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
