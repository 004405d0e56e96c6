// Package watch rebuilds the site when Markdown sources change. Filesystem
// events are debounced so editor save bursts trigger a single rebuild.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

const defaultDebounce = 250 * time.Millisecond

// ErrNoDirectories indicates the watcher was configured without any source roots.
var ErrNoDirectories = errors.New("watch: no directories configured")

// Config controls which paths trigger rebuilds.
type Config struct {
	// Dirs lists the directory roots to watch recursively.
	Dirs []string
	// Extensions limits triggering files by extension (defaults to .md, .yaml, .yml, .html, .css, .js).
	Extensions []string
	// Debounce is the quiet period required before OnChange fires.
	Debounce time.Duration
}

// OnChange receives each debounced batch of changed paths.
type OnChange func(ctx context.Context, paths []string)

// Watcher observes configured directories and invokes a callback with the
// batch of changed paths after the debounce window closes.
type Watcher struct {
	cfg      Config
	onChange OnChange
	logger   interfaces.Logger
}

// New constructs a Watcher. The callback runs on the watcher goroutine.
func New(cfg Config, onChange OnChange, logger interfaces.Logger) *Watcher {
	if logger == nil {
		logger = logging.NoOp()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".md", ".yaml", ".yml", ".html", ".css", ".js"}
	}
	return &Watcher{
		cfg:      cfg,
		onChange: onChange,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, dispatching debounced change batches.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.cfg.Dirs) == 0 {
		return ErrNoDirectories
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range w.cfg.Dirs {
		if err := addRecursive(watcher, dir); err != nil {
			return err
		}
	}
	w.logger.Info("watch.start", "dirs", strings.Join(w.cfg.Dirs, ","), "debounce", w.cfg.Debounce)

	pending := map[string]struct{}{}
	timer := time.NewTimer(w.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	timerActive := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watch: events channel closed")
			}
			// New directories need their own watch before files inside
			// them produce events.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name); err != nil {
						w.logger.Warn("watch.add_failed", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if !w.matches(event) {
				continue
			}
			pending[event.Name] = struct{}{}
			if timerActive && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.cfg.Debounce)
			timerActive = true

		case <-timer.C:
			timerActive = false
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for path := range pending {
				batch = append(batch, path)
			}
			sort.Strings(batch)
			pending = map[string]struct{}{}

			w.logger.Debug("watch.changed", "paths", len(batch))
			if w.onChange != nil {
				w.onChange(ctx, batch)
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watch: errors channel closed")
			}
			w.logger.Error("watch.error", "error", watchErr)
		}
	}
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, allowed := range w.cfg.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watch: walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}
