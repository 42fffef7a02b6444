package intent

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"book-chatbot/pkg/log"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher is a Provider that reloads the catalog file when it changes on disk.
// A file that fails to parse is logged and the previous catalog stays in effect.
type Watcher struct {
	path     string
	l        log.Logger
	debounce time.Duration
	onReload func(*Catalog)

	current atomic.Pointer[Catalog]

	reloadMu sync.Mutex // guards lastHash and serializes reloads
	lastHash [sha256.Size]byte

	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	dirty     atomic.Bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long file events are coalesced before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// WithOnReload registers a callback invoked after every successful reload.
func WithOnReload(fn func(*Catalog)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// NewWatcher loads the catalog at path and prepares to watch it.
func NewWatcher(path string, l log.Logger, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		path:     path,
		l:        l,
		debounce: defaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := w.parse(data)
	if err != nil {
		return nil, err
	}
	w.current.Store(c)
	w.lastHash = sha256.Sum256(data)
	return w, nil
}

func (w *Watcher) Current() *Catalog { return w.current.Load() }

func (w *Watcher) parse(data []byte) (*Catalog, error) {
	format, err := FormatFromPath(w.path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

// Start watches the catalog's directory so editor rename-over saves are caught.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("intent watcher: create fsnotify: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("intent watcher: watch %s: %w", filepath.Dir(w.path), err)
	}
	w.fsWatcher = fsw

	w.wg.Add(1)
	go w.loop(ctx)
	return nil
}

// Stop terminates the watcher. Safe to call more than once.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() { close(w.done) })
	w.wg.Wait()
	if w.fsWatcher != nil {
		return w.fsWatcher.Close()
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	target := filepath.Clean(w.path)
	for {
		select {
		case <-w.done:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.dirty.Store(true)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.l.Warnf(ctx, "intent.Watcher: fsnotify error: %v", err)
		case <-ticker.C:
			if w.dirty.Swap(false) {
				w.Reload(ctx)
			}
		}
	}
}

// Reload re-reads the catalog file and swaps it in when its content changed and parses cleanly.
// Safe to call while the watcher is running.
func (w *Watcher) Reload(ctx context.Context) {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	data, err := os.ReadFile(w.path)
	if err != nil {
		w.l.Warnf(ctx, "intent.Watcher.Reload: read %s: %v", w.path, err)
		return
	}
	hash := sha256.Sum256(data)
	if hash == w.lastHash {
		return
	}

	c, err := w.parse(data)
	if err != nil {
		w.l.Errorf(ctx, "intent.Watcher.Reload: keeping previous catalog: %v", err)
		return
	}
	w.current.Store(c)
	w.lastHash = hash
	w.l.Infof(ctx, "intent.Watcher.Reload: loaded %d intents from %s", c.Len(), w.path)

	if w.onReload != nil {
		w.onReload(c)
	}
}
