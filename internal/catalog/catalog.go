// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog tracks the documents available in the analysis server's
// data directory.
//
// The server resolves file paths itself; the catalog exists purely so the UI
// can offer path completion and catch obvious typos before a request is sent.
package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Catalog maintains a sorted snapshot of file names under a data directory.
// Safe for concurrent use.
type Catalog struct {
	dir string

	mu    sync.RWMutex
	files []string // relative paths, sorted

	watcher *fsnotify.Watcher
	// Rescans are cheap but event bursts are not: a single copy into the
	// data dir can emit hundreds of events. The limiter caps full rescans
	// at 2/sec with a small burst.
	rescanLimiter *rate.Limiter

	dirtyMu sync.Mutex
	dirty   bool

	ctx    context.Context
	cancel context.CancelFunc
}

// Open creates a catalog for dir and performs the initial scan.
// A missing directory is not an error; the catalog is simply empty.
func Open(dir string) (*Catalog, error) {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Catalog{
		dir:           dir,
		rescanLimiter: rate.NewLimiter(rate.Limit(2), 4),
		ctx:           ctx,
		cancel:        cancel,
	}
	if err := c.rescan(); err != nil {
		cancel()
		return nil, err
	}
	return c, nil
}

// Dir returns the directory this catalog tracks.
func (c *Catalog) Dir() string {
	return c.dir
}

// Files returns the current snapshot of relative file paths, sorted.
func (c *Catalog) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.files))
	copy(out, c.files)
	return out
}

// Len returns the number of tracked files.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}

// Contains reports whether the given relative path is in the catalog.
func (c *Catalog) Contains(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := sort.SearchStrings(c.files, path)
	return i < len(c.files) && c.files[i] == path
}

// Complete returns the files whose path starts with prefix, case-insensitively.
func (c *Catalog) Complete(prefix string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lower := strings.ToLower(prefix)
	var matches []string
	for _, f := range c.files {
		if strings.HasPrefix(strings.ToLower(f), lower) {
			matches = append(matches, f)
		}
	}
	return matches
}

// Watch starts watching the data directory for changes. Changes trigger a
// rescan of the whole directory rather than incremental bookkeeping; the
// trees involved are small.
func (c *Catalog) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	c.watcher = watcher

	if err := c.addRecursive(c.dir); err != nil {
		watcher.Close()
		c.watcher = nil
		return err
	}

	go c.processEvents()
	go c.processDirty()

	return nil
}

// Close stops watching and releases resources.
func (c *Catalog) Close() error {
	c.cancel()
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}

// addRecursive adds dir and all its subdirectories to the watch list.
func (c *Catalog) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !info.IsDir() {
			return nil
		}
		if shouldIgnore(filepath.Base(path)) && path != dir {
			return filepath.SkipDir
		}
		// Non-fatal: an unwatchable subdirectory just goes stale
		_ = c.watcher.Add(path)
		return nil
	})
}

// processEvents marks the catalog dirty on relevant file system events.
func (c *Catalog) processEvents() {
	for {
		select {
		case <-c.ctx.Done():
			return

		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				c.markDirty()
			}

			// New directories need watching too
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = c.addRecursive(event.Name)
				}
			}

		case _, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// processDirty periodically rescans when events have accumulated.
func (c *Catalog) processDirty() {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.dirtyMu.Lock()
			dirty := c.dirty
			c.dirtyMu.Unlock()

			if !dirty || !c.rescanLimiter.Allow() {
				continue
			}

			c.dirtyMu.Lock()
			c.dirty = false
			c.dirtyMu.Unlock()

			_ = c.rescan()
		}
	}
}

func (c *Catalog) markDirty() {
	c.dirtyMu.Lock()
	c.dirty = true
	c.dirtyMu.Unlock()
}

// rescan rebuilds the file snapshot from disk.
func (c *Catalog) rescan() error {
	var files []string

	err := filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		base := filepath.Base(path)
		if info.IsDir() {
			if shouldIgnore(base) && path != c.dir {
				return filepath.SkipDir
			}
			return nil
		}
		if shouldIgnore(base) {
			return nil
		}
		rel, relErr := filepath.Rel(c.dir, path)
		if relErr != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	sort.Strings(files)

	c.mu.Lock()
	c.files = files
	c.mu.Unlock()
	return nil
}

// shouldIgnore reports whether a file or directory name is skipped.
func shouldIgnore(name string) bool {
	return strings.HasPrefix(name, ".")
}
