package pipeline

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher resubmits files of the docs tree when they change on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	orch     *Orchestrator
	filter   Filter
	root     string
	skip     string // absolute output dir, never watched
	debounce time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	running map[string]bool // a job for the path is queued or in progress
	dirty   map[string]bool // changed again while running
}

// NewWatcher watches root and every directory below it.
func NewWatcher(o *Orchestrator, f Filter, debounce time.Duration, log *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	skip := ""
	if o.cfg.OutputDir != "" {
		skip, _ = filepath.Abs(o.cfg.OutputDir)
	}
	w := &Watcher{
		watcher:  fw,
		skip:     skip,
		orch:     o,
		filter:   f,
		root:     o.cfg.DocsDir,
		debounce: debounce,
		log:      log,
		pending:  make(map[string]*time.Timer),
		running:  make(map[string]bool),
		dirty:    make(map[string]bool),
	}
	if err := w.addTree(w.root, nil); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// fsnotify is not recursive, so every directory is added explicitly.
// Files already present are passed to found, if set; they may have been
// written before the directory was watched.
func (w *Watcher) addTree(dir string, found func(path string)) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if found != nil {
				found(path)
			}
			return nil
		}
		if path != dir && excludedDir(d.Name()) || w.skipped(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Run processes change events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.log.Debug("fsnotify event", "name", event.Name, "op", event.Op.String())
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				err := w.addTree(event.Name, func(path string) { w.schedule(ctx, path) })
				if err != nil {
					w.log.Warn("failed to watch new directory", "dir", event.Name, "error", err)
				}
				continue
			}
			w.schedule(ctx, event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error", "error", err)
		case <-ctx.Done():
			w.mu.Lock()
			for _, t := range w.pending {
				t.Stop()
			}
			w.mu.Unlock()
			return
		}
	}
}

func (w *Watcher) skipped(path string) bool {
	return Within(w.skip, path)
}

// schedule queues a rebuild of path once writes to it settle.
func (w *Watcher) schedule(ctx context.Context, path string) {
	if w.skipped(path) {
		return
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	if !w.filter.Match(rel) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[rel]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[rel] = time.AfterFunc(w.debounce, func() { w.fire(ctx, rel) })
}

// fire runs when the debounce for rel expires. Only one job per path is
// outstanding at a time; a change seen while it runs queues one more
// build after it finishes.
func (w *Watcher) fire(ctx context.Context, rel string) {
	w.mu.Lock()
	delete(w.pending, rel)
	if w.running[rel] {
		w.dirty[rel] = true
		w.mu.Unlock()
		return
	}
	w.running[rel] = true
	w.mu.Unlock()

	for {
		job := NewJob(rel)
		if err := w.orch.SubmitWait(ctx, job); err != nil {
			w.log.Warn("rebuild not queued", "path", rel, "error", err)
			w.release(rel)
			return
		}
		w.log.Info("rebuild queued", "path", rel, "job_id", job.ID)

		select {
		case <-job.Finished():
		case <-ctx.Done():
			w.release(rel)
			return
		}

		w.mu.Lock()
		if !w.dirty[rel] {
			delete(w.running, rel)
			w.mu.Unlock()
			return
		}
		delete(w.dirty, rel)
		w.mu.Unlock()
	}
}

func (w *Watcher) release(rel string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.running, rel)
	delete(w.dirty, rel)
}
