// Package watcher reloads callout settings when their file changes.
//
// The watcher observes the settings file's directory (editors and sync tools
// often replace files by rename, which a watch on the file itself would
// lose) and publishes a settings change on a notify.Notifier once a burst of
// events has settled.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/calloutls/internal/config/notify"
	"github.com/dshills/calloutls/internal/logging"
)

// Source is the Change.Source of notifications published by a Watcher.
const Source = "watcher"

// ErrWatcherClosed is returned when starting a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// Watcher publishes a notify.PathCallouts change whenever the settings file
// is written, created, removed or renamed.
type Watcher struct {
	path     string
	dir      string
	notifier *notify.Notifier
	debounce time.Duration
	logger   *logging.Logger

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	started bool
	closed  bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long events must be quiet before notifying.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for path publishing on n. Call Start to begin.
func New(path string, n *notify.Notifier, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		notifier: n,
		debounce: 200 * time.Millisecond,
		logger:   logging.Nop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. The settings file itself need not exist yet, but
// its directory must.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.started {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return err
	}

	w.fsw = fsw
	w.started = true
	w.wg.Add(1)
	go w.loop()

	w.logger.Debug("watching %s", w.path)
	return nil
}

// Close stops watching. It is safe to call Close multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	fsw := w.fsw
	w.mu.Unlock()

	w.wg.Wait()
	if fsw != nil {
		return fsw.Close()
	}
	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("settings file event %s", ev.Op)
			if w.debounce == 0 {
				w.publish()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.publish()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("settings watcher error: %v", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) publish() {
	w.notifier.NotifySet(notify.PathCallouts, w.path, Source)
}
