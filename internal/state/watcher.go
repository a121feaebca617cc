package state

import (
	"errors"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/astromark/internal/pathutil"
	"github.com/Paintersrp/astromark/internal/tui/message"
)

// DocumentWatcher reports changes made on disk to the files open in tabs.
// Parent directories are watched so editors that replace files atomically
// are still noticed.
type DocumentWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
	once    sync.Once

	mu    sync.Mutex
	files map[string]int
	dirs  map[string]int
}

func NewDocumentWatcher() (*DocumentWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &DocumentWatcher{
		watcher: w,
		done:    make(chan struct{}),
		files:   make(map[string]int),
		dirs:    make(map[string]int),
	}, nil
}

// Watch starts reporting changes to path. Calls are reference counted so the
// same file may be open in several tabs.
func (w *DocumentWatcher) Watch(path string) error {
	if w == nil {
		return nil
	}
	file := pathutil.Canonical(path)
	if file == "" {
		return errors.New("cannot watch an empty path")
	}
	dir := filepath.Dir(file)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[file]++
	return nil
}

// Unwatch releases one reference taken by Watch.
func (w *DocumentWatcher) Unwatch(path string) {
	if w == nil {
		return
	}
	file := pathutil.Canonical(path)
	dir := filepath.Dir(file)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[file] == 0 {
		return
	}
	w.files[file]--
	if w.files[file] == 0 {
		delete(w.files, file)
	}

	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.watcher.Remove(dir)
	}
}

// Watching reports whether path currently has at least one reference.
func (w *DocumentWatcher) Watching(path string) bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[pathutil.Canonical(path)] > 0
}

// Start returns a command that blocks until the next relevant change. The
// caller re-issues it after every message it produces.
func (w *DocumentWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.isRelevant(event) {
					continue
				}
				return message.FileChangedMsg{Path: pathutil.Canonical(event.Name)}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return message.WatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *DocumentWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})
	return closeErr
}

func (w *DocumentWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[pathutil.Canonical(event.Name)] > 0
}
