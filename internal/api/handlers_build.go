package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dgallion1/cutedoc/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type buildRequest struct {
	// Paths to rebuild, relative to the docs root. Empty rebuilds the tree.
	Paths []string `json:"paths"`
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "build pipeline unavailable", http.StatusServiceUnavailable)
		return
	}

	var req buildRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var results []map[string]any
	if len(req.Paths) == 0 {
		jobs, err := s.orchestrator.SubmitTree(r.Context(), pipeline.Filter{Include: s.cfg.Include, Exclude: s.cfg.Exclude})
		for _, job := range jobs {
			results = append(results, jobResult(job))
		}
		if err != nil {
			jsonError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
	} else {
		filter := pipeline.Filter{Include: s.cfg.Include, Exclude: s.cfg.Exclude}
		for _, p := range req.Paths {
			rel, full := s.resolve(p)
			if pipeline.Within(s.cfg.OutputDir, full) {
				results = append(results, map[string]any{"path": rel, "error": "inside output directory"})
				continue
			}
			if !filter.Match(rel) {
				results = append(results, map[string]any{"path": rel, "error": "excluded by filter"})
				continue
			}
			if info, err := os.Stat(full); err != nil || info.IsDir() {
				results = append(results, map[string]any{"path": rel, "error": "file not found"})
				continue
			}
			job := pipeline.NewJob(rel)
			if err := s.orchestrator.Submit(job); err != nil {
				results = append(results, map[string]any{"path": rel, "error": err.Error()})
				continue
			}
			results = append(results, jobResult(job))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

func jobResult(job *pipeline.Job) map[string]any {
	snap := job.Snapshot()
	return map[string]any{
		"path":     snap.Path,
		"job_id":   snap.ID,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/build/%s/status", snap.ID),
	}
}

func (s *Server) handleBuildStatus(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "build pipeline unavailable", http.StatusServiceUnavailable)
		return
	}
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":       snap.ID,
		"path":         snap.Path,
		"status":       snap.Status,
		"phase":        snap.Phase,
		"progress":     snap.Progress,
		"content_hash": snap.ContentHash,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "build pipeline unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"jobs":        s.orchestrator.JobCount(),
		"workers":     s.cfg.WorkerCount,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
