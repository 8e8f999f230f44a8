package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/qalint/internal/core/domain"
	"github.com/custodia-labs/qalint/internal/core/ports/driven"
	"github.com/custodia-labs/qalint/internal/logger"
)

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("filesystem: watcher closed")

// Ensure Watcher implements the interface.
var _ driven.DocumentWatcher = (*Watcher)(nil)

// Watcher reports changes to watched documents.
// Files are watched through their parent directory so editors that
// save by rename are still seen.
type Watcher struct {
	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher

	// files are watched file paths; dirs are directories watched whole.
	files map[string]bool
	dirs  map[string]bool
}

// NewWatcher creates a watcher. Nothing is watched until Watch is called.
func NewWatcher() *Watcher {
	return &Watcher{
		files: make(map[string]bool),
		dirs:  make(map[string]bool),
	}
}

// Watch starts watching paths and returns a channel of changes.
// Directories report every Markdown file below their top level.
func (w *Watcher) Watch(ctx context.Context, paths []string) (<-chan domain.FileChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}
	if w.watcher != nil {
		return nil, errors.New("filesystem: already watching")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	watched := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnreadable, err)
		}

		dir := filepath.Dir(abs)
		if info.IsDir() {
			dir = abs
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
		}
		if watched[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		watched[dir] = true
		logger.Debug("Watching %s", dir)
	}

	w.watcher = fsw
	changes := make(chan domain.FileChange, 16)
	go w.run(ctx, fsw, changes)
	return changes, nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, changes chan<- domain.FileChange) {
	defer close(changes)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			change := w.handleFsEvent(event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// handleFsEvent converts an fsnotify event into a change for a watched
// document, or nil when the event is irrelevant.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *domain.FileChange {
	path, err := filepath.Abs(event.Name)
	if err != nil || !w.relevant(path) {
		return nil
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		changeType = domain.ChangeDeleted
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	default:
		return nil
	}

	if changeType != domain.ChangeDeleted {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return nil
		}
	}

	return &domain.FileChange{Type: changeType, Path: path}
}

func (w *Watcher) relevant(path string) bool {
	if w.files[path] {
		return true
	}
	if isHidden(filepath.Base(path)) || !IsDocument(path) {
		return false
	}
	return w.dirs[filepath.Dir(path)]
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
