package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/teranos/gridmap/errors"
	"github.com/teranos/gridmap/logger"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits after the last change before firing
const DefaultDebounce = 500 * time.Millisecond

// ChangeCallback is called once per debounced batch of file changes
type ChangeCallback func() error

// Watcher watches the project config file and the network model for changes
// and triggers rebuild callbacks. Callbacks never run concurrently.
//
// Files are watched through their parent directory, so a file replaced by an
// atomic save (write temp file, rename over) keeps being watched.
type Watcher struct {
	paths          []string
	targets        map[string]watchTarget
	watcher        *fsnotify.Watcher
	callbacks      []ChangeCallback
	mu             sync.Mutex
	runMu          sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	logger         *zap.SugaredLogger
	done           chan struct{}
}

// watchTarget is one watched directory: every entry in it, or only some names
type watchTarget struct {
	all   bool
	names map[string]bool
}

func (t watchTarget) matches(name string) bool {
	return t.all || t.names[name]
}

// NewWatcher creates a watcher over the given files or directories.
// Every path must exist.
func NewWatcher(paths []string, debounce time.Duration) (*Watcher, error) {
	targets := make(map[string]watchTarget)
	for _, path := range paths {
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to watch %s", path)
		}

		dir, name := path, ""
		if !info.IsDir() {
			dir, name = filepath.Dir(path), filepath.Base(path)
		}
		target, ok := targets[dir]
		if !ok {
			target = watchTarget{names: make(map[string]bool)}
		}
		if name == "" {
			target.all = true
		} else {
			target.names[name] = true
		}
		targets[dir] = target
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	for dir := range targets {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		paths:          paths,
		targets:        targets,
		watcher:        fw,
		debouncePeriod: debounce,
		logger:         logger.ComponentLogger("config.watcher"),
		done:           make(chan struct{}),
	}, nil
}

// OnChange registers a callback to be called after a debounced change
func (w *Watcher) OnChange(callback ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching for changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isRelevant(event) || !w.watched(event.Name) {
				continue
			}
			w.logger.Infow("Change detected",
				"file", event.Name,
				"op", event.Op.String())
			w.scheduleRun()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)

		case <-w.done:
			return
		}
	}
}

// watched reports whether name is one of the watched files, or inside a watched directory
func (w *Watcher) watched(name string) bool {
	name = filepath.Clean(name)
	target, ok := w.targets[filepath.Dir(name)]
	return ok && target.matches(filepath.Base(name))
}

// isRelevant keeps writes, creates and renames of non-temporary files
func isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~") && !strings.HasSuffix(base, ".swp")
}

// scheduleRun debounces rapid file changes into one callback run
func (w *Watcher) scheduleRun() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.run)
}

func (w *Watcher) run() {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	w.mu.Lock()
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, callback := range callbacks {
		if err := callback(); err != nil {
			// Keep watching; the operator fixes the input and saves again
			w.logger.Errorw("Rebuild after change failed", logger.FieldError, err)
		}
	}
}

// Stop stops watching and waits for an in-flight callback to finish
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()

	w.runMu.Lock()
	defer w.runMu.Unlock()
	return err
}
