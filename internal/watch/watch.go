// Package watch triggers site rebuilds when source files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the tree must stay quiet before a rebuild
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc rebuilds the site
type RebuildFunc func(ctx context.Context) error

// Watcher watches files and directory trees and calls a rebuild function
// once changes settle
type Watcher struct {
	dirs     []string
	files    map[string]bool
	ignore   []string
	rebuild  RebuildFunc
	debounce time.Duration
	log      logrus.FieldLogger

	mu    sync.Mutex // serializes rebuilds
	ready chan struct{}
}

// New creates a watcher. paths may name files or directories; directories
// are watched recursively. Anything below an ignore path is skipped.
func New(paths, ignore []string, rebuild RebuildFunc, log logrus.FieldLogger) *Watcher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	w := &Watcher{
		files:    make(map[string]bool),
		rebuild:  rebuild,
		debounce: DefaultDebounce,
		log:      log,
		ready:    make(chan struct{}),
	}
	for _, p := range ignore {
		w.ignore = append(w.ignore, absPath(p))
	}
	for _, p := range paths {
		p = absPath(p)
		if fi, err := os.Stat(p); err == nil && fi.IsDir() {
			w.dirs = append(w.dirs, p)
		} else {
			w.files[p] = true
		}
	}
	return w
}

// SetDebounce overrides DefaultDebounce
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Ready is closed once every path is being watched
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Rebuild runs the rebuild function, waiting for any rebuild in progress
func (w *Watcher) Rebuild(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rebuild(ctx)
}

// Run watches until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := w.addTree(fw, dir); err != nil {
			return err
		}
	}
	// Files are watched through their directory so editors that replace
	// files on save are still seen
	parents := map[string]bool{}
	for file := range w.files {
		parent := filepath.Dir(file)
		if parents[parent] {
			continue
		}
		parents[parent] = true
		if err := fw.Add(parent); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to watch %s: %w", parent, err)
		}
	}
	close(w.ready)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.addTree(fw, ev.Name); err != nil {
						w.log.WithError(err).Warn("Could not watch new directory")
					}
				}
			}
			w.log.WithFields(logrus.Fields{"path": ev.Name, "op": ev.Op.String()}).Debug("Change detected")
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("Watch error")
		case <-timer.C:
			pending = false
			w.log.Info("Change detected, rebuilding")
			if err := w.Rebuild(ctx); err != nil {
				w.log.WithError(err).Error("Rebuild failed")
			}
		}
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(p) {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) relevant(name string) bool {
	name = absPath(name)
	if w.ignored(name) {
		return false
	}
	if w.files[name] {
		return true
	}
	for _, dir := range w.dirs {
		if within(dir, name) {
			return true
		}
	}
	return false
}

func (w *Watcher) ignored(name string) bool {
	for _, ig := range w.ignore {
		if within(ig, name) {
			return true
		}
	}
	return false
}

func within(dir, name string) bool {
	return name == dir || strings.HasPrefix(name, dir+string(filepath.Separator))
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
