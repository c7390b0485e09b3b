package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Change reports that the fallback CSV was written, replaced or removed.
type Change struct {
	Path    string
	Removed bool
	Time    time.Time
}

// Watcher monitors the fallback CSV. It watches the containing directory so
// that editors and exporters which replace the file atomically are seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger
}

// NewWatcher creates a watcher for the CSV at path. The file itself need not
// exist yet, but its directory must.
func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve csv path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		watcher:  fsw,
		debounce: 250 * time.Millisecond,
		log:      log,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Watch starts watching and returns a channel of coalesced changes. Bursts
// of events within the debounce window produce one Change. The channel is
// closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) <-chan Change {
	out := make(chan Change, 1)

	go func() {
		defer close(out)

		var pending *fsnotify.Event

		debounceTimer := time.NewTimer(0)
		if !debounceTimer.Stop() {
			<-debounceTimer.C
		}
		defer debounceTimer.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
					continue
				}
				ev := event
				pending = &ev
				debounceTimer.Reset(w.debounce)

			case <-debounceTimer.C:
				if pending == nil {
					continue
				}
				c := Change{
					Path:    w.path,
					Removed: pending.Has(fsnotify.Remove) || pending.Has(fsnotify.Rename),
					Time:    time.Now(),
				}
				pending = nil
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warn("csv watcher error", zap.Error(err))
			}
		}
	}()

	return out
}

// Close stops watching and releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
