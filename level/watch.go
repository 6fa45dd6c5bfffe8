package level

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a level file when it changes on disk. A reloaded level is only sent on Levels if its
// hash differs from the last one sent.
type Watcher struct {
	log      *slog.Logger
	path     string
	lastHash uint64

	watcher *fsnotify.Watcher
	Levels  chan *Level
	Errors  chan error
	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// NewWatcher watches the level at path. current is the hash of the level already loaded, if any.
func NewWatcher(log *slog.Logger, path string, current uint64) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	path = filepath.Clean(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		log:      log,
		path:     path,
		lastHash: current,
		watcher:  w,
		Levels:   make(chan *Level, 4),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching. Levels and Errors are closed once Close returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
		close(w.Levels)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	l, err := Load(w.path)
	if err != nil {
		w.send(nil, err)
		return
	}
	if l.Hash == w.lastHash {
		w.log.Debug("level file touched without changes", "path", w.path)
		return
	}
	w.lastHash = l.Hash
	w.log.Info("level changed", "path", w.path, "hash", l.Hash)
	w.send(l, nil)
}

func (w *Watcher) send(l *Level, err error) {
	if err != nil {
		select {
		case w.Errors <- err:
		case <-w.closeCh:
		default:
			w.log.Warn("dropped level watcher error", "err", err)
		}
		return
	}
	select {
	case w.Levels <- l:
	case <-w.closeCh:
	}
}
