package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// debounceDelay coalesces the burst of fsnotify events an editor or
	// atomic rename produces into one reload.
	debounceDelay = 250 * time.Millisecond

	// reloadTimeout bounds a single reload triggered by a file change.
	reloadTimeout = 30 * time.Second
)

// Watcher reloads a file-backed catalog when the document changes on
// disk, atomically swapping the store's snapshot. Remote catalogs are
// not watched.
type Watcher struct {
	path    string
	loader  *Loader
	store   *Store
	logger  *slog.Logger
	onSwap  func(snap *Snapshot)
	fsw     *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	stopped sync.Once
}

// NewWatcher creates a watcher for the catalog document at path.
// onSwap, if non-nil, is called after each successful snapshot swap.
func NewWatcher(path string, loader *Loader, store *Store, onSwap func(snap *Snapshot), logger *slog.Logger) *Watcher {
	return &Watcher{
		path:   filepath.Clean(path),
		loader: loader,
		store:  store,
		logger: logger,
		onSwap: onSwap,
		done:   make(chan struct{}),
	}
}

// Start begins watching. The parent directory is watched rather than the
// file itself so atomic replace (write temp, rename over) is seen.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return err
	}

	w.wg.Add(1)
	go w.loop()

	w.logger.Info("Catalog watcher started", "path", w.path)
	return nil
}

// Stop shuts the watcher down. Safe to call multiple times.
func (w *Watcher) Stop() {
	w.stopped.Do(func() {
		close(w.done)
		if w.fsw != nil {
			_ = w.fsw.Close()
		}
	})
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var debounce *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			// Restart the debounce window on every relevant event.
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(debounceDelay)
			}
			pending = debounce.C

		case <-pending:
			pending = nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Catalog watcher error", "error", err)

		case <-w.done:
			if debounce != nil {
				debounce.Stop()
			}
			return
		}
	}
}

// relevant reports whether the event concerns the catalog document.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}

func (w *Watcher) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	snap, err := w.loader.Load(ctx)
	if err != nil {
		// Keep serving the previous snapshot on a broken rewrite.
		w.store.SetError(err)
		w.logger.Warn("Catalog reload failed, keeping previous snapshot", "error", err)
		return
	}

	rev := w.store.Install(snap)
	w.logger.Info("Catalog reloaded", "revision", rev, "movies", len(snap.Movies))

	if w.onSwap != nil {
		w.onSwap(snap)
	}
}
