// Package watcher reports changes to the source file being inspected.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/irscope/internal/log"
	"github.com/zjrosen/irscope/internal/pubsub"
)

// Watcher publishes the watched path on its broker, debounced, whenever the
// file is written or recreated.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	broker    *pubsub.Broker[string]
	done      chan struct{}
	stopOnce  sync.Once
}

// Config holds watcher options.
type Config struct {
	Path     string
	Debounce time.Duration
}

// DefaultConfig returns a config with a 200ms debounce.
func DefaultConfig(path string) Config {
	return Config{Path: path, Debounce: 200 * time.Millisecond}
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(cfg.Path),
		debounce:  cfg.Debounce,
		broker:    pubsub.NewBroker[string](),
		done:      make(chan struct{}),
	}, nil
}

// Broker returns the broker change events are published on.
func (w *Watcher) Broker() *pubsub.Broker[string] { return w.broker }

// Start watches the file's directory, so that editors replacing the file
// through a rename are still seen.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	go w.loop()
	log.Info(log.CatWatcher, "watching", "path", w.path)
	return nil
}

// Stop ends watching and closes the broker. It is safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevant(event) {
				continue
			}
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
			log.Debug(log.CatWatcher, "source changed", "path", w.path)
			w.broker.Publish(pubsub.UpdatedEvent, w.path)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
