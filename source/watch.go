package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const eventChannelBuffer = 64

// DefaultDebounce is the quiet period after the last change before a batch
// of changes is reported.
const DefaultDebounce = 500 * time.Millisecond

// WatchOperation indicates the type of file operation.
type WatchOperation string

const (
	WatchOpCreate WatchOperation = "create"
	WatchOpModify WatchOperation = "modify"
	WatchOpDelete WatchOperation = "delete"
)

// WatchEvent is a debounced change to an input file.
type WatchEvent struct {
	Path      string
	AbsPath   string
	Operation WatchOperation
}

// InputWatcher watches an input directory for changes to tabular files.
// Changes are debounced and reported only when file content changed.
type InputWatcher struct {
	dir        string
	debounce   time.Duration
	extensions map[string]bool
	watcher    *fsnotify.Watcher
	logger     *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashMu sync.Mutex
	hashes map[string]string

	events  chan WatchEvent
	dropped atomic.Int64
}

// NewInputWatcher creates a watcher for dir. A zero debounce uses
// DefaultDebounce; no extensions means ".csv".
func NewInputWatcher(dir string, debounce time.Duration, extensions []string, logger *slog.Logger) (*InputWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	exts := make(map[string]bool)
	if len(extensions) == 0 {
		exts[".csv"] = true
	}
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[strings.ToLower(ext)] = true
	}
	return &InputWatcher{
		dir:        dir,
		debounce:   debounce,
		extensions: exts,
		watcher:    fsw,
		logger:     logger,
		pending:    make(map[string]fsnotify.Op),
		hashes:     make(map[string]string),
		events:     make(chan WatchEvent, eventChannelBuffer),
	}, nil
}

// Events returns the channel of debounced changes. It is closed when the
// watcher stops.
func (w *InputWatcher) Events() <-chan WatchEvent {
	return w.events
}

// Start registers the directory tree and begins processing events until ctx
// is done or Stop is called.
func (w *InputWatcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.dir); err != nil {
		return err
	}
	w.seedHashes()
	go w.processEvents(ctx)
	w.logger.Info("Input watcher started", "dir", w.dir, "debounce", w.debounce)
	return nil
}

// Stop releases the fsnotify watcher.
func (w *InputWatcher) Stop() error {
	return w.watcher.Close()
}

// DroppedEvents returns the number of events dropped due to a full channel.
func (w *InputWatcher) DroppedEvents() int64 {
	return w.dropped.Load()
}

func (w *InputWatcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// seedHashes records current content so that touching a file without
// changing it does not trigger a run.
func (w *InputWatcher) seedHashes() {
	_ = filepath.WalkDir(w.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !w.watched(path) {
			return nil
		}
		if h, err := fileHash(path); err == nil {
			w.setHash(path, h)
		}
		return nil
	})
}

func (w *InputWatcher) watched(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}

func (w *InputWatcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)
		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *InputWatcher) handleFSEvent(event fsnotify.Event) {
	if !w.watched(event.Name) {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := w.watcher.Add(event.Name); err != nil {
					w.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
				}
			}
		}
		return
	}
	w.pendingMu.Lock()
	w.pending[event.Name] |= event.Op
	w.pendingMu.Unlock()
	w.logger.Debug("Input change detected", "path", event.Name, "op", event.Op.String())
}

func (w *InputWatcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		if ctx.Err() != nil {
			return
		}
		rel, _ := filepath.Rel(w.dir, path)
		event := WatchEvent{Path: rel, AbsPath: path}

		hash, err := fileHash(path)
		if err != nil {
			if os.IsNotExist(err) || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
				w.deleteHash(path)
				event.Operation = WatchOpDelete
				w.sendEvent(event)
			} else {
				w.logger.Warn("Failed to read changed input", "path", rel, "error", err)
			}
			continue
		}

		old, had := w.hash(path)
		if had && old == hash {
			continue
		}
		w.setHash(path, hash)
		if had {
			event.Operation = WatchOpModify
		} else {
			event.Operation = WatchOpCreate
		}
		w.sendEvent(event)
	}
}

func (w *InputWatcher) sendEvent(event WatchEvent) {
	select {
	case w.events <- event:
	default:
		dropped := w.dropped.Add(1)
		w.logger.Warn("Event channel full, dropping event", "path", event.Path, "total_dropped", dropped)
	}
}

func (w *InputWatcher) hash(path string) (string, bool) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	h, ok := w.hashes[path]
	return h, ok
}

func (w *InputWatcher) setHash(path, h string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = h
}

func (w *InputWatcher) deleteHash(path string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	delete(w.hashes, path)
}

func fileHash(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:]), nil
}
