package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/dgallion1/cutedoc/internal/config"
	"github.com/dgallion1/cutedoc/internal/doctree"
	"github.com/dgallion1/cutedoc/internal/enhance"
	"github.com/dgallion1/cutedoc/internal/parser"
	"github.com/dgallion1/cutedoc/internal/pipeline"
	"github.com/dgallion1/cutedoc/internal/progress"
	"github.com/dgallion1/cutedoc/internal/site"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Enhance every page of the docs directory into the output directory",
	Long: `Walks docs_dir, enhances each HTML page and copies every other file to
output_dir. Unchanged output is not rewritten. With --watch the docs
directory is watched and changed files are rebuilt until interrupted.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Bool("watch", false, "rebuild files as they change")
	buildCmd.Flags().StringP("output", "o", "", "override output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	if err := cfg.ValidateBuild(); err != nil {
		return err
	}
	watch, _ := cmd.Flags().GetBool("watch")
	log := newLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	filter := pipeline.Filter{Include: cfg.Include, Exclude: cfg.Exclude}
	files, err := pipeline.Walk(cfg.DocsDir, filter, cfg.OutputDir)
	if err != nil {
		return err
	}

	enh := enhance.New(doctree.Classifier{WholeWords: cfg.WholeWordKeywords}, cfg.ImagesPath, "", log)
	orch := pipeline.NewOrchestrator(cfg, enh, log)

	reporter := progress.NewReporter()
	tally := newTally(len(files))
	initial := make(chan struct{})
	var reportMu sync.Mutex
	orch.OnDone(func(s pipeline.JobSnapshot) {
		n, first := tally.add(s)
		if !first {
			log.Info("rebuilt", "path", s.Path, "status", s.Status)
			return
		}
		reportMu.Lock()
		reporter.Update(n, s.Path)
		reportMu.Unlock()
		if n == len(files) {
			close(initial)
		}
	})

	reporter.Start(len(files))
	orch.Start(ctx)
	if _, err := orch.SubmitFiles(ctx, files); err != nil {
		orch.Stop()
		return err
	}
	if len(files) == 0 {
		close(initial)
	}

	if !watch {
		orch.Close()
	} else {
		select {
		case <-initial:
		case <-ctx.Done():
		}
	}
	reporter.Finish()

	if err := writeSiteIndex(cfg, files); err != nil {
		log.Warn("site index not written", "error", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tally.summary())

	if watch && ctx.Err() == nil {
		w, err := pipeline.NewWatcher(orch, filter, time.Duration(cfg.WatchDebounceMs)*time.Millisecond, log)
		if err != nil {
			orch.Stop()
			return fmt.Errorf("watching %s: %w", cfg.DocsDir, err)
		}
		log.Info("watching for changes", "docs_dir", cfg.DocsDir)
		w.Run(ctx)
		orch.Stop()
	}

	if failed := tally.failed(); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

// writeSiteIndex writes a generated index.html when the docs tree has
// none of its own.
func writeSiteIndex(cfg config.Config, files []string) error {
	if _, err := os.Stat(filepath.Join(cfg.DocsDir, "index.html")); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	var pages []string
	for _, f := range files {
		if parser.IsPage(f) {
			pages = append(pages, f)
		}
	}
	idx, err := site.Build(cfg.DocsDir, "Documentation", pages)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(cfg.OutputDir, "index.html"))
	if err != nil {
		return err
	}
	if err := idx.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// tally counts finished jobs of the initial build by status.
type tally struct {
	mu     sync.Mutex
	total  int
	done   int
	status map[pipeline.JobStatus]int
}

func newTally(total int) *tally {
	return &tally{total: total, status: make(map[pipeline.JobStatus]int)}
}

// add records a finished job. first is false once the initial build is
// complete, i.e. for rebuilds triggered by the watcher.
func (t *tally) add(s pipeline.JobSnapshot) (n int, first bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done >= t.total {
		return t.done, false
	}
	t.done++
	t.status[s.Status]++
	return t.done, true
}

func (t *tally) failed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status[pipeline.StatusFailed]
}

func (t *tally) summary() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("%d files: %d written, %d unchanged, %d failed",
		t.total, t.status[pipeline.StatusCompleted], t.status[pipeline.StatusUnchanged], t.status[pipeline.StatusFailed])
}
