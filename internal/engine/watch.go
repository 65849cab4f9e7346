package engine

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/lumenforge/codeintel/internal/debug"
)

// Watcher is C6's optional filesystem-watch mode: it recursively watches a
// root directory and invalidates an Engine's C2/C4 entries when a watched
// file changes on disk, so a long-running mcp-serve process stays correct
// without polling or requiring the caller to re-detect staleness itself.
type Watcher struct {
	eng     *Engine
	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewWatcher creates a Watcher bound to eng. Call Start to begin watching
// and Stop to release the underlying inotify/kqueue handle.
func NewWatcher(eng *Engine) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{eng: eng, watcher: fw, ctx: ctx, cancel: cancel}, nil
}

// Start adds watches under root and begins processing events in the
// background. Directories named .git or node_modules are skipped, matching
// the paths the registry would never parse anyway.
func (w *Watcher) Start(root string) error {
	if err := w.addWatches(root); err != nil {
		return err
	}
	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Stop cancels the background loop and closes the fsnotify handle, blocking
// until the event goroutine has exited.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) addWatches(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if base == ".git" || base == "node_modules" {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			debug.LogIndex("watch: failed to add %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("codeintel: watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				debug.LogIndex("watch: failed to add new directory %s: %v", path, err)
			}
			return
		}
	}

	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		debug.LogIndex("watch: invalidating %s (write)", path)
		w.eng.invalidatePath(path)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		debug.LogIndex("watch: invalidating %s (remove)", path)
		w.eng.invalidatePath(path)
		w.eng.forgetKnown(path)
	}
}
