package server

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// templateWatcher calls onChange once per burst of edits below a directory.
type templateWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()
	logger   *slog.Logger
	wg       sync.WaitGroup

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

func startWatcher(dir string, debounce time.Duration, onChange func(), logger *slog.Logger) (*templateWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// fsnotify is not recursive
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name()[0] == '.' && path != dir {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
	if err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &templateWatcher{
		watcher:  fw,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *templateWatcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Chmod != 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}

			w.logger.Debug("template changed", "file", event.Name, "op", event.Op.String())
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// schedule (re)arms the debounce timer.
func (w *templateWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

// fire runs onChange under the lock, so onChange must not block.
func (w *templateWatcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.onChange()
	}
}

// Close stops the watcher. onChange is never running or called once Close
// returns.
func (w *templateWatcher) Close() {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("Failed to close file watcher", "error", err)
	}
	w.wg.Wait()
}
