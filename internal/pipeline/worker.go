package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/cutedoc/internal/enhance"
	"github.com/dgallion1/cutedoc/internal/parser"
	"github.com/dgallion1/cutedoc/internal/prefs"
)

// Worker builds single files of the documentation tree.
type Worker struct {
	docsDir   string
	outputDir string
	enhancer  *enhance.Enhancer
	log       *slog.Logger
}

func NewWorker(docsDir, outputDir string, enh *enhance.Enhancer, log *slog.Logger) *Worker {
	return &Worker{
		docsDir:   docsDir,
		outputDir: outputDir,
		enhancer:  enh,
		log:       log,
	}
}

// Process enhances a page, or copies any other file, into the output tree.
// Output identical to what is already there is not rewritten.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "path", job.Path)

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	src := filepath.Join(w.docsDir, filepath.FromSlash(job.Path))
	dst := filepath.Join(w.outputDir, filepath.FromSlash(job.Path))

	data, err := os.ReadFile(src)
	if err != nil {
		log.Error("read failed", "error", err)
		job.AddError(fmt.Sprintf("read: %s", err))
		job.SetStatus(StatusFailed, "reading")
		return
	}

	out := data
	if parser.IsPage(job.Path) {
		// Phase 1: Parse
		job.SetStatus(StatusParsing, "parsing")
		page, err := parser.Parse(bytes.NewReader(data), job.Path)
		if err != nil {
			log.Error("parse failed", "error", err)
			job.AddError(fmt.Sprintf("parse: %s", err))
			job.SetStatus(StatusFailed, "parsing")
			return
		}

		// Phase 2: Enhance. Static output has no visitor, so both panels
		// start closed.
		job.SetStatus(StatusEnhancing, "enhancing")
		res := w.enhancer.Apply(page, prefs.State{}, "")
		job.SetResult(res)

		var buf bytes.Buffer
		if err := page.Render(&buf); err != nil {
			log.Error("render failed", "error", err)
			job.AddError(fmt.Sprintf("render: %s", err))
			job.SetStatus(StatusFailed, "enhancing")
			return
		}
		out = buf.Bytes()
		log.Debug("enhanced page", "declarations", res.Declarations, "nav_entries", res.NavEntries)
	}

	hash := ContentHashHex(out)
	job.SetContentHash(hash)

	// Phase 3: Write, unless unchanged.
	if existing, err := os.ReadFile(dst); err == nil && ContentHashHex(existing) == hash {
		job.SetStatus(StatusUnchanged, "done")
		return
	}

	job.SetStatus(StatusWriting, "writing")
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		log.Error("mkdir failed", "error", err)
		job.AddError(fmt.Sprintf("mkdir: %s", err))
		job.SetStatus(StatusFailed, "writing")
		return
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		log.Error("write failed", "error", err)
		job.AddError(fmt.Sprintf("write: %s", err))
		job.SetStatus(StatusFailed, "writing")
		return
	}

	job.SetStatus(StatusCompleted, "done")
}
