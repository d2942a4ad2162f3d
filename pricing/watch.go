package pricing

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig controls rule file watching.
type WatchConfig struct {
	// DebounceInterval is the quiet period after a change before the
	// table reloads. Bursts of editor events collapse into one reload.
	DebounceInterval time.Duration
	// Extensions limits which file events trigger reloads.
	Extensions []string
	// OnReload, when set, runs after every reload attempt with its
	// result.
	OnReload func(error)
}

// DefaultWatchConfig returns the default watch configuration.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		DebounceInterval: 100 * time.Millisecond,
		Extensions:       []string{".yaml", ".yml"},
	}
}

// Watch reloads the engine's rule table whenever its file changes. It
// watches the containing directory, since editors typically replace
// files rather than write them in place. Watch blocks until ctx is
// cancelled. A nil config uses DefaultWatchConfig.
func (e *Engine) Watch(ctx context.Context, config *WatchConfig) error {
	if config == nil {
		config = DefaultWatchConfig()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	dir := filepath.Dir(e.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %q: %w", dir, err)
	}
	e.log.Info("watching pricing rules",
		"path", e.path,
		"debounce_ms", config.DebounceInterval.Milliseconds(),
	)
	debounce := newDebouncer(config.DebounceInterval)
	defer debounce.stop()
	for {
		select {
		case <-ctx.Done():
			e.log.Info("pricing watch stopped")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !shouldReload(ev, config.Extensions) {
				continue
			}
			e.log.Debug("rule file event", "path", ev.Name, "op", ev.Op.String())
			debounce.trigger(func() {
				err := e.Reload()
				if config.OnReload != nil {
					config.OnReload(err)
				}
			})
		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			e.log.Error("pricing watcher error", "error", err)
		}
	}
}

// shouldReload filters watch events down to content changes of rule
// files.
func shouldReload(ev fsnotify.Event, exts []string) bool {
	if ev.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	ext := strings.ToLower(filepath.Ext(ev.Name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// debouncer coalesces bursts of events into one callback after a quiet
// period.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

// trigger schedules the callback after the quiet period, replacing any
// pending one.
func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, callback)
}

// stop cancels any pending callback.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
