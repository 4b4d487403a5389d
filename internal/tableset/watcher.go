package tableset

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pygacity/sandlersteam/internal/steamdata"
	"github.com/pygacity/sandlersteam/pkg/log"
)

// DefaultDebounceDelay is how long the watcher waits after the last change
// before reloading.
const DefaultDebounceDelay = 200 * time.Millisecond

// A failed reload is retried with backoff starting at the debounce delay.
const (
	maxReloadRetries = 5
	maxRetryDelay    = 5 * time.Second
)

// Watcher reloads a Registry when table files in its directory change.
type Watcher struct {
	dir           string
	registry      *Registry
	debounceDelay time.Duration
	logger        log.Logger

	mu       sync.Mutex
	debounce *time.Timer
	backoff  *backoff
	retries  int
	stopped  bool
	files    map[string]bool
}

// NewWatcher creates a watcher over dir. A non-positive delay selects
// DefaultDebounceDelay.
func NewWatcher(dir string, registry *Registry, delay time.Duration, logger log.Logger) *Watcher {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	files := make(map[string]bool)
	for _, name := range steamdata.Files() {
		files[name] = true
	}
	return &Watcher{
		dir:           dir,
		registry:      registry,
		debounceDelay: delay,
		logger:        logger,
		files:         files,
		backoff:       newBackoff(delay, maxRetryDelay),
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create table watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching table directory", log.String("dir", w.dir))

	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.files[filepath.Base(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("table file changed", log.String("file", event.Name), log.String("op", event.Op.String()))
			w.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("table watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.retries = 0
	w.backoff.reset()
	w.schedule(w.debounceDelay)
}

// schedule arms the reload timer. mu must be held.
func (w *Watcher) schedule(d time.Duration) {
	if w.stopped {
		return
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(d, w.reload)
}

func (w *Watcher) reload() {
	// Reload logs and reports failures through the registry hooks.
	err := w.registry.Reload()

	w.mu.Lock()
	defer w.mu.Unlock()
	if err == nil {
		return
	}
	if w.retries >= maxReloadRetries {
		w.logger.Error("giving up on table reload", log.Int("attempts", w.retries+1), log.Err(err))
		return
	}
	w.retries++
	delay := w.backoff.next()
	w.logger.Warn("retrying table reload", log.Int("attempt", w.retries), log.Duration("delay", delay))
	w.schedule(delay)
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.debounce != nil {
		w.debounce.Stop()
	}
}
