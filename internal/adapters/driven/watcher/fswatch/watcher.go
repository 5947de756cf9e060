// Package fswatch reports edits to collection files made outside the running process.
package fswatch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/curata/internal/core/domain"
	"github.com/custodia-labs/curata/internal/core/ports/driven"
	"github.com/custodia-labs/curata/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// DefaultDebounce coalesces the write bursts editors and atomic renames produce.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches the directories holding collection files and emits the
// collection kind once per burst of events on its file.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]domain.CollectionKind
	debounce time.Duration

	changes chan domain.CollectionKind
	errs    chan error

	mu      sync.Mutex
	pending map[domain.CollectionKind]*time.Timer
	closed  bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// New starts watching the given collection files.
// Parent directories are watched so files replaced by rename are still seen.
func New(files map[domain.CollectionKind]string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]domain.CollectionKind, len(files)),
		debounce: debounce,
		changes:  make(chan domain.CollectionKind, len(files)+1),
		errs:     make(chan error, 1),
		pending:  make(map[domain.CollectionKind]*time.Timer),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for kind, path := range files {
		abs, err := filepath.Abs(path)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = kind
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("watching %s", dir)
	}

	go w.run()
	return w, nil
}

// Changes delivers the collection whose backing file changed.
func (w *Watcher) Changes() <-chan domain.CollectionKind {
	return w.changes
}

// Errors delivers watcher failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching. Pending notifications are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for _, t := range w.pending {
		t.Stop()
	}
	w.mu.Unlock()

	close(w.stopCh)
	err := w.watcher.Close()
	<-w.doneCh
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher: %v", err)
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	kind, ok := w.files[abs]
	if !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[kind]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[kind] = time.AfterFunc(w.debounce, func() { w.emit(kind) })
}

func (w *Watcher) emit(kind domain.CollectionKind) {
	w.mu.Lock()
	delete(w.pending, kind)
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	logger.Debug("%s collection changed on disk", kind)
	select {
	case w.changes <- kind:
	case <-w.stopCh:
	}
}
