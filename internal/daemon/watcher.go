package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nocshop/shopgen/internal/logfields"
)

// Watcher monitors the sources directory and fires the trigger callback
// after edits settle. Rapid successive edits (editor save bursts, bulk
// copies) coalesce into a single trigger.
type Watcher struct {
	dir      string
	debounce time.Duration
	trigger  func()
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher over dir. trigger is called from the watch
// goroutine after each debounced change burst.
func NewWatcher(dir string, debounce time.Duration, trigger func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch sources directory %s: %w", dir, err)
	}
	return &Watcher{dir: dir, debounce: debounce, trigger: trigger, watcher: fsw}, nil
}

// Start begins watching until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	slog.Info("Watching sources directory", logfields.Path(w.dir))
	go w.loop(ctx)
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Source change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// relevant filters events down to descriptor document changes.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	ext := filepath.Ext(event.Name)
	return ext == ".yml" || ext == ".yaml"
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
