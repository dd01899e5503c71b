package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent represents a single filesystem change to a watched file.
type ChangeEvent struct {
	Path string
	Op   fsnotify.Op
}

// Removed reports whether the file is gone after this change.
func (ev ChangeEvent) Removed() bool {
	return ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0
}

// Watcher watches a directory tree, or a single file, for changes to files
// with the configured extensions and emits debounced batches.
type Watcher struct {
	rootPath string
	onlyFile string // set when rootPath names a file
	exts     []string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a Watcher for rootPath. When rootPath is a directory it
// is watched recursively, skipping hidden directories. When it is a file,
// only that file is reported. exts filters by extension, e.g. ".tape".
func NewWatcher(rootPath string, debounce time.Duration, logger *slog.Logger, exts ...string) (*Watcher, error) {
	if len(exts) == 0 {
		return nil, fmt.Errorf("new watcher: no extensions given")
	}
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}

	w := &Watcher{
		rootPath: rootPath,
		exts:     exts,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
	}

	if info.IsDir() {
		err = w.addDirs()
	} else {
		// Watch the parent: a file replaced by rename drops its own watch.
		w.onlyFile = filepath.Clean(rootPath)
		err = fsw.Add(filepath.Dir(w.onlyFile))
	}
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("new watcher: %w", err)
	}

	return w, nil
}

// addDirs walks rootPath and adds every non-hidden directory.
func (w *Watcher) addDirs() error {
	return filepath.WalkDir(w.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.rootPath && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// Existing lists the watched files that are present now, reported as
// writes, so callers can replay them before the first batch arrives.
func (w *Watcher) Existing() ([]ChangeEvent, error) {
	if w.onlyFile != "" {
		if !w.hasExt(w.onlyFile) {
			return nil, nil
		}
		return []ChangeEvent{{Path: w.onlyFile, Op: fsnotify.Write}}, nil
	}

	var out []ChangeEvent
	err := filepath.WalkDir(w.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != w.rootPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.hasExt(path) {
			out = append(out, ChangeEvent{Path: path, Op: fsnotify.Write})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list existing: %w", err)
	}
	return out, nil
}

// Run is the main event loop. It reads fsnotify events, filters them,
// debounces rapid edits, and sends batched ChangeEvents to out.
// It blocks until ctx is cancelled or the fsnotify channels close.
func (w *Watcher) Run(ctx context.Context, out chan<- []ChangeEvent) error {
	pending := make(map[string]fsnotify.Op)
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.accept(ev) {
				pending[ev.Name] = mergeOp(pending[ev.Name], ev.Op)
				timer.Reset(w.debounce)
			}
			if w.onlyFile == "" && ev.Op&fsnotify.Create != 0 {
				w.maybeAddDir(ev.Name)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("fsnotify error", "err", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]ChangeEvent, 0, len(pending))
			for p, op := range pending {
				batch = append(batch, ChangeEvent{Path: p, Op: op})
			}
			pending = make(map[string]fsnotify.Op)

			select {
			case out <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// mergeOp folds next into the ops already pending for a path. A create or
// write after a rename or remove means the file is back, as when an editor
// saves by moving the old file aside and writing a new one.
func mergeOp(prev, next fsnotify.Op) fsnotify.Op {
	if next&(fsnotify.Create|fsnotify.Write) != 0 {
		prev &^= fsnotify.Remove | fsnotify.Rename
	}
	return prev | next
}

// Close shuts down the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// accept returns true if the event concerns a watched file and carries a
// relevant op.
func (w *Watcher) accept(ev fsnotify.Event) bool {
	if w.onlyFile != "" && filepath.Clean(ev.Name) != w.onlyFile {
		return false
	}
	if !w.hasExt(ev.Name) {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) hasExt(name string) bool {
	ext := filepath.Ext(name)
	for _, e := range w.exts {
		if ext == e {
			return true
		}
	}
	return false
}

// maybeAddDir adds path to the watch set if it is a non-hidden directory.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || strings.HasPrefix(filepath.Base(path), ".") {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.logger.Debug("could not add to watch", "path", path, "err", err)
	}
}
