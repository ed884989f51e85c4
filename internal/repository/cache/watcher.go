package cache

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"engagementReco/pkg/logger"

	"github.com/fsnotify/fsnotify"
)

// Invalidator is notified when the watched file changes.
type Invalidator interface {
	Invalidate()
}

// FileWatcher invalidates a cache whenever its dataset file is written,
// replaced or removed. The parent directory is watched so that editors
// saving through a rename are still seen.
type FileWatcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	target      Invalidator
	path        string
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

func NewFileWatcher(path string, target Invalidator) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		watcher:     w,
		target:      target,
		path:        abs,
		debounceDur: 200 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching in a goroutine. It returns once the watch is registered.
func (fw *FileWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.running {
		return nil
	}
	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return err
	}
	fw.running = true

	logger.Info("Watching dataset file", "path", fw.path)
	go fw.run(ctx)

	return nil
}

func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		_ = fw.watcher.Close()
		return
	}
	fw.running = false
	fw.mu.Unlock()

	close(fw.stopCh)
	<-fw.doneCh

	if err := fw.watcher.Close(); err != nil {
		logger.Error("Failed to close dataset watcher", err)
	}
}

func (fw *FileWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)

	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.stopCh:
			return
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			logger.Debug("Dataset file changed", "path", ev.Name, "op", ev.Op.String())
			debounce = time.After(fw.debounceDur)
		case <-debounce:
			debounce = nil
			fw.target.Invalidate()
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Dataset watcher error", "error", err)
		}
	}
}
