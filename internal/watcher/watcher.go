// Package watcher reports changes to a single file on disk, debounced, to
// any number of subscribers.
package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/quickselect/internal/log"
	"github.com/zjrosen/quickselect/internal/pubsub"
)

// Change is the payload of every published event.
type Change struct {
	Path  string
	Error error // set for pubsub.ErrorEvent only
}

// Config holds watcher configuration options.
type Config struct {
	Path     string
	Debounce time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(path string) Config {
	return Config{
		Path:     path,
		Debounce: 200 * time.Millisecond,
	}
}

// Watcher monitors one file and publishes a ChangedEvent or RemovedEvent
// once writes to it have been quiet for the debounce period.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	broker    *pubsub.Broker[Change]
	done      chan struct{}
	stopped   chan struct{}
	started   bool
}

// New creates a watcher for cfg.Path. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		return nil, fmt.Errorf("debounce must be positive, got %s", cfg.Debounce)
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cfg.Path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      abs,
		debounce:  cfg.Debounce,
		broker:    pubsub.NewBroker[Change](),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}, nil
}

// Broker returns the broker events are published on.
func (w *Watcher) Broker() *pubsub.Broker[Change] {
	return w.broker
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. The parent directory is watched rather than the
// file so that editors which save by rename are still seen.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "Watching file", "path", w.path, "debounce", w.debounce)

	w.started = true
	go w.loop()
	return nil
}

// Stop terminates the watcher and closes the broker. Call it from the
// goroutine that called Start.
func (w *Watcher) Stop() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fsWatcher.Close()
	if w.started {
		<-w.stopped
	}
	w.broker.Close()
	return err
}

func (w *Watcher) loop() {
	defer close(w.stopped)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			w.publishState()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watcher error", err, "path", w.path)
			w.broker.Publish(pubsub.ErrorEvent, Change{Path: w.path, Error: err})

		case <-w.done:
			timer.Stop()
			return
		}
	}
}

// publishState reports whether the file exists after a burst of events.
func (w *Watcher) publishState() {
	_, err := os.Stat(w.path)
	switch {
	case err == nil:
		log.Debug(log.CatWatcher, "File changed", "path", w.path)
		w.broker.Publish(pubsub.ChangedEvent, Change{Path: w.path})
	case errors.Is(err, os.ErrNotExist):
		log.Debug(log.CatWatcher, "File removed", "path", w.path)
		w.broker.Publish(pubsub.RemovedEvent, Change{Path: w.path})
	default:
		log.ErrorErr(log.CatWatcher, "Stat failed", err, "path", w.path)
		w.broker.Publish(pubsub.ErrorEvent, Change{Path: w.path, Error: err})
	}
}

// isRelevantEvent reports whether event touches the watched file.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
