package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/alnah/go-mdprint/internal/vault"
)

// watchDebounce groups the burst of events an editor save produces.
const watchDebounce = 300 * time.Millisecond

// watchAndConvert calls rebuild whenever a note, stylesheet or vault setting
// under roots changes, until ctx is done. Rebuild failures are logged.
func watchAndConvert(ctx context.Context, roots []string, rebuild func(context.Context) error, log *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, root := range roots {
		addDirsRecursive(watcher, root, log)
	}

	requests, trigger := newDebouncer(watchDebounce)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					addDirsRecursive(watcher, ev.Name, log)
					continue
				}
			}
			if !isRelevantChange(ev) {
				continue
			}
			log.Debug("Change detected", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watcher error", zap.Error(err))
		case <-requests:
			if err := rebuild(ctx); err != nil {
				log.Error("Rebuild failed", zap.Error(err))
			}
		}
	}
}

// newDebouncer returns a channel that receives once per burst of trigger
// calls, after d has passed without another call.
func newDebouncer(d time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	requests := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case requests <- struct{}{}:
			default:
			}
		})
	}
	return requests, trigger
}

// isRelevantChange reports whether ev touches a note, a stylesheet or a
// settings file. Generated documents and editor temp files are ignored.
func isRelevantChange(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}

	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "#") || strings.HasSuffix(base, "~") {
		return false
	}
	// Pane layout files never affect output.
	if strings.HasPrefix(base, "workspace") && strings.HasSuffix(base, ".json") {
		return false
	}

	switch strings.ToLower(filepath.Ext(base)) {
	case ".md", ".markdown", ".css", ".json":
		return true
	}
	return false
}

// addDirsRecursive watches root and every non-hidden directory below it.
func addDirsRecursive(w *fsnotify.Watcher, root string, log *zap.Logger) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if err := w.Add(path); err != nil {
			log.Warn("Watch add failed", zap.String("dir", path), zap.Error(err))
		}
		return nil
	})
}

// watchRoots lists the directories whose changes affect the output: those
// holding the inputs, the config directories of their vaults, and the
// directory of the theme stylesheet.
func watchRoots(inputs []string, themeCSSFile string) []string {
	seen := make(map[string]bool)
	add := func(dir string) {
		if abs, err := filepath.Abs(dir); err == nil {
			seen[abs] = true
		}
	}

	for _, input := range inputs {
		dir := input
		if info, err := os.Stat(input); err != nil || !info.IsDir() {
			dir = filepath.Dir(input)
		}
		add(dir)

		// Find looks above the file's directory, so probe from inside dir
		if v, err := vault.Find(filepath.Join(dir, "note.md")); err == nil {
			add(v.ConfigDir)
		}
	}
	if themeCSSFile != "" {
		add(filepath.Dir(themeCSSFile))
	}

	roots := make([]string, 0, len(seen))
	for dir := range seen {
		roots = append(roots, dir)
	}
	sort.Strings(roots)
	return roots
}
