package corpus

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the corpus root recursively and reports changed corpus
// files in debounced batches of relative paths. The server wires the callback
// to parse-cache invalidation and search reindexing.
type Watcher struct {
	watcher       *fsnotify.Watcher
	root          string
	discovery     *Discovery
	debounceTime  time.Duration
	callback      func(relPaths []string)
	ctx           context.Context
	cancel        context.CancelFunc
	accumulated   map[string]bool
	accumulatedMu sync.Mutex
	debounceTimer *time.Timer
	timerMu       sync.Mutex
	stopOnce      sync.Once
	doneCh        chan struct{}
}

// NewWatcher creates a watcher over the store's root directory. The store's
// discovery decides which changed files are worth reporting.
func NewWatcher(store *Store) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:      watcher,
		root:         store.Root(),
		discovery:    store.discovery,
		debounceTime: 500 * time.Millisecond,
		accumulated:  make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(w.root); err != nil {
		watcher.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context, callback func(relPaths []string)) error {
	if callback == nil {
		return nil
	}

	w.callback = callback
	w.ctx, w.cancel = context.WithCancel(ctx)

	go w.watch()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			// Never started, close doneCh manually
			close(w.doneCh)
		}
		err = w.watcher.Close()
	})
	return err
}

// watch is the main event loop.
func (w *Watcher) watch() {
	defer close(w.doneCh)

	flushCh := make(chan struct{}, 1)

	for {
		select {
		case <-w.ctx.Done():
			w.stopDebounceTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// New directories need to be added to the watch set.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			relPath, ok := w.relevantEvent(event)
			if !ok {
				continue
			}

			w.accumulatedMu.Lock()
			w.accumulated[relPath] = true
			w.accumulatedMu.Unlock()

			w.resetDebounceTimer(flushCh)

		case <-flushCh:
			w.flush()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Corpus watcher error: %v", err)
		}
	}
}

// flush fires the callback with the accumulated batch.
func (w *Watcher) flush() {
	w.accumulatedMu.Lock()
	if len(w.accumulated) == 0 {
		w.accumulatedMu.Unlock()
		return
	}
	relPaths := make([]string, 0, len(w.accumulated))
	for relPath := range w.accumulated {
		relPaths = append(relPaths, relPath)
	}
	w.accumulated = make(map[string]bool)
	w.accumulatedMu.Unlock()

	w.callback(relPaths)
}

// resetDebounceTimer resets the debounce timer, properly stopping the old one.
func (w *Watcher) resetDebounceTimer(flushCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		if !w.debounceTimer.Stop() {
			select {
			case <-w.debounceTimer.C:
			default:
			}
		}
	}

	w.debounceTimer = time.AfterFunc(w.debounceTime, func() {
		select {
		case flushCh <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopDebounceTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}

// relevantEvent maps an fsnotify event to a corpus-relative path, filtering
// out events for files outside the corpus patterns.
func (w *Watcher) relevantEvent(event fsnotify.Event) (string, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return "", false
	}

	relPath, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return "", false
	}
	relPath = filepath.ToSlash(relPath)

	if !w.discovery.Matches(relPath) {
		return "", false
	}
	return relPath, true
}

// addDirectoriesRecursively adds all directories in the tree to the watcher.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}

		if !info.IsDir() {
			return nil
		}

		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
			return nil
		}
		return nil
	})
}
