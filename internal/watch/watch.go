// Package watch signals index rebuilds when Markdown files under a
// root change. Bursts of filesystem events (editor save, git checkout)
// collapse into a single signal per debounce interval, and writes that
// do not change file content are suppressed by hash.
package watch

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docdex/docdex/internal/scan"
)

// Config controls one watcher.
type Config struct {
	// Debounce is how long to batch events before signaling.
	Debounce time.Duration

	// Excludes follow the scanner's patterns; events under matching
	// paths are dropped.
	Excludes []string

	// IgnorePath is the generated index file. The tool writes it on
	// every rebuild, so watching it would loop.
	IgnorePath string
}

// Watcher owns the fsnotify instance and the debounce loop.
type Watcher struct {
	root string
	cfg  Config
	log  *slog.Logger
	fsw  *fsnotify.Watcher

	changes chan struct{}

	mu      sync.Mutex
	pending bool
	hashes  map[string]string
}

// New builds a watcher rooted at root and registers every directory
// under it. Call Start to begin delivering signals.
func New(root string, cfg Config, log *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:    abs,
		cfg:     cfg,
		log:     log,
		fsw:     fsw,
		changes: make(chan struct{}, 1),
		hashes:  make(map[string]string),
	}
	if err := w.addRecursive(abs); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Changes delivers one signal per debounce window with activity.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start runs the event loop until the watcher is closed.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	ticker := time.NewTicker(w.cfg.Debounce)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	name := ev.Name

	// New directories need their own watches.
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if !w.excluded(name) {
				if err := w.addRecursive(name); err != nil {
					w.log.Warn("watch new directory", "path", name, "error", err)
				}
				w.markPending()
			}
			return
		}
	}

	if !w.shouldProcess(name) {
		return
	}

	if ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
		w.mu.Lock()
		delete(w.hashes, name)
		w.mu.Unlock()
		w.markPending()
		return
	}
	if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
		if w.contentChanged(name) {
			w.markPending()
		}
	}
}

// shouldProcess filters events down to Markdown files the scanner
// would see.
func (w *Watcher) shouldProcess(name string) bool {
	if strings.ToLower(filepath.Ext(name)) != ".md" {
		return false
	}
	if w.cfg.IgnorePath != "" && name == w.cfg.IgnorePath {
		return false
	}
	return !w.excluded(name)
}

func (w *Watcher) excluded(name string) bool {
	rel, err := filepath.Rel(w.root, name)
	if err != nil {
		return false
	}
	return scan.Excluded(filepath.ToSlash(rel), w.cfg.Excludes)
}

// contentChanged hashes the file and reports whether the content
// differs from the last event. Editors and build tools touch files
// without changing them; those writes should not rebuild the index.
func (w *Watcher) contentChanged(name string) bool {
	data, err := os.ReadFile(name)
	if err != nil {
		// Partially written or already gone; let the rebuild sort it out.
		return true
	}
	sum := sha256.Sum256(data)
	h := hex.EncodeToString(sum[:])

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.hashes[name] == h {
		return false
	}
	w.hashes[name] = h
	return true
}

func (w *Watcher) markPending() {
	w.mu.Lock()
	w.pending = true
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	fire := w.pending
	w.pending = false
	w.mu.Unlock()

	if !fire {
		return
	}
	select {
	case w.changes <- struct{}{}:
	default:
		// A signal is already waiting; rebuilds coalesce.
	}
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.excluded(path) {
			return fs.SkipDir
		}
		return w.fsw.Add(path)
	})
}
