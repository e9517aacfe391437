// Package watch reruns generation when ontology documents change.
package watch

import (
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/conduit-lang/ontogen/internal/errors"
	"github.com/conduit-lang/ontogen/internal/logger"
)

// DefaultDelay is how long changes are collected before a run.
const DefaultDelay = 100 * time.Millisecond

// FileWatcher monitors a set of files and triggers callbacks. It watches
// the files' directories so editors that save by rename are still seen.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	onChange  func([]string) error

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewFileWatcher creates a watcher for files. onChange receives the changed
// paths; calls never overlap.
func NewFileWatcher(files []string, delay time.Duration, onChange func([]string) error) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file watcher")
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(delay),
		onChange:  onChange,
		files:     make(map[string]bool),
		dirs:      make(map[string]bool),
		stopChan:  make(chan struct{}),
	}
	fw.debouncer.SetCallback(func(changed []string) {
		if err := fw.onChange(changed); err != nil {
			logger.Errorw("Handling file changes failed", "files", changed, "error", err)
		}
	})

	if err := fw.SetFiles(files); err != nil {
		watcher.Close()
		return nil, err
	}
	return fw, nil
}

// SetFiles replaces the watched set, for instance after imports changed.
func (fw *FileWatcher) SetFiles(files []string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	fw.files = make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", f)
		}
		fw.files[abs] = true

		dir := filepath.Dir(abs)
		if fw.dirs[dir] {
			continue
		}
		if err := fw.watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch directory %s", dir)
		}
		fw.dirs[dir] = true
		logger.Debugw("Watching directory", "dir", dir)
	}
	return nil
}

// Files returns the watched files, sorted.
func (fw *FileWatcher) Files() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	out := make([]string, 0, len(fw.files))
	for f := range fw.files {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Start begins watching in the background
func (fw *FileWatcher) Start() {
	fw.wg.Add(1)
	go fw.watch()
}

// Stop stops the watcher. Calling it twice is harmless.
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()
	fw.debouncer.Stop()
	return fw.watcher.Close()
}

func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if fw.watched(event.Name) {
				logger.Debugw("File changed", "file", event.Name, "op", event.Op.String())
				fw.debouncer.Add(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("Watcher error", "error", err)

		case <-fw.stopChan:
			return
		}
	}
}

func (fw *FileWatcher) watched(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.files[abs]
}

// Debouncer collects file changes and triggers callbacks after a delay
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	files    map[string]struct{}
	mutex    sync.Mutex
	callback func([]string)
	stopped  bool

	// running serializes callbacks
	running sync.Mutex
}

// NewDebouncer creates a new debouncer instance
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultDelay
	}
	return &Debouncer{
		duration: duration,
		files:    make(map[string]struct{}),
	}
}

// Add records a change and restarts the delay.
func (d *Debouncer) Add(file string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}
	d.files[file] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

// flush triggers the callback with accumulated files
func (d *Debouncer) flush() {
	d.running.Lock()
	defer d.running.Unlock()

	d.mutex.Lock()
	if len(d.files) == 0 || d.stopped {
		d.mutex.Unlock()
		return
	}
	files := make([]string, 0, len(d.files))
	for file := range d.files {
		files = append(files, file)
	}
	slices.Sort(files)
	d.files = make(map[string]struct{})
	callback := d.callback
	d.mutex.Unlock()

	if callback != nil {
		callback(files)
	}
}

// SetCallback sets the callback function
func (d *Debouncer) SetCallback(callback func([]string)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Stop cancels a pending flush and waits for a running one.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mutex.Unlock()

	d.running.Lock()
	defer d.running.Unlock()
}
