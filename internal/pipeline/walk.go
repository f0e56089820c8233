package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never descended into.
var DefaultExcludes = []string{
	".git",
	".svn",
	".hg",
	".DS_Store",
}

// Filter selects files of the documentation tree by glob.
type Filter struct {
	Include []string // Empty includes everything
	Exclude []string
}

// Match reports whether the slash-separated relative path passes the filter.
func (f Filter) Match(rel string) bool {
	if len(f.Include) > 0 && !matchesAny(rel, f.Include) {
		return false
	}
	return !matchesAny(rel, f.Exclude)
}

// matchesAny checks rel and its base name against doublestar patterns.
func matchesAny(rel string, patterns []string) bool {
	normalized := filepath.ToSlash(rel)
	base := filepath.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// Within reports whether path is dir or lies below it. An empty dir
// contains nothing.
func Within(dir, path string) bool {
	if dir == "" {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return abs == absDir || strings.HasPrefix(abs, absDir+string(filepath.Separator))
}

func excludedDir(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// Walk lists the files under root accepted by f, as slash-separated
// relative paths in lexical order. Directories in skip (absolute or
// relative to the working directory) are not descended into.
func Walk(root string, f Filter, skip ...string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && excludedDir(d.Name()) {
				return filepath.SkipDir
			}
			if path != root && slices.ContainsFunc(skip, func(s string) bool { return Within(s, path) }) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if f.Match(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// SubmitTree walks the docs tree and queues a job per file.
func (o *Orchestrator) SubmitTree(ctx context.Context, f Filter) ([]*Job, error) {
	files, err := Walk(o.cfg.DocsDir, f, o.cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	return o.SubmitFiles(ctx, files)
}

// SubmitFiles queues a job per relative path, waiting for queue room.
// Jobs queued before a failure are returned with the error.
func (o *Orchestrator) SubmitFiles(ctx context.Context, files []string) ([]*Job, error) {
	jobs := make([]*Job, 0, len(files))
	for _, rel := range files {
		job := NewJob(rel)
		if err := o.SubmitWait(ctx, job); err != nil {
			return jobs, fmt.Errorf("queue %s: %w", rel, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
