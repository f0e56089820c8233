package api

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dgallion1/cutedoc/internal/parser"
	"github.com/dgallion1/cutedoc/internal/pipeline"
	"github.com/dgallion1/cutedoc/internal/site"
)

const indexPage = "index.html"

// resolve maps a URL path onto the docs directory. The cleaned relative
// path is returned alongside the file path; it never escapes DocsDir.
func (s *Server) resolve(urlPath string) (rel, full string) {
	rel = strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	return rel, filepath.Join(s.cfg.DocsDir, filepath.FromSlash(rel))
}

// handlePage serves the documentation tree. Pages are enhanced with the
// requester's panel preferences; everything else is served as is.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	rel, full := s.resolve(r.URL.Path)

	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		jsonError(w, "failed to read "+rel, http.StatusInternalServerError)
		return
	}
	if info.IsDir() {
		rel = path.Join(rel, indexPage)
		full = filepath.Join(full, indexPage)
		if _, err := os.Stat(full); err != nil {
			if rel == indexPage {
				s.serveSiteIndex(w)
				return
			}
			http.NotFound(w, r)
			return
		}
	}

	if !parser.IsPage(rel) {
		http.ServeFile(w, r, full)
		return
	}
	s.servePage(w, r, rel, full)
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, rel, full string) {
	f, err := os.Open(full)
	if err != nil {
		jsonError(w, "failed to open "+rel, http.StatusInternalServerError)
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	res, err := s.enhancer.Enhance(f, &buf, path.Base(rel), s.prefs.Load(r), r.URL.Path)
	if err != nil {
		s.log.Error("enhance failed", "path", rel, "error", err)
		jsonError(w, "failed to render "+rel, http.StatusInternalServerError)
		return
	}
	s.log.Debug("page enhanced", "path", rel, "declarations", res.Declarations, "nav_entries", res.NavEntries)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "Cookie")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}

// serveSiteIndex lists the pages of a docs tree that has no index.html.
func (s *Server) serveSiteIndex(w http.ResponseWriter) {
	files, err := pipeline.Walk(s.cfg.DocsDir, pipeline.Filter{Include: s.cfg.Include, Exclude: s.cfg.Exclude}, s.cfg.OutputDir)
	if err != nil {
		jsonError(w, "failed to list pages", http.StatusInternalServerError)
		return
	}
	var pages []string
	for _, f := range files {
		if parser.IsPage(f) {
			pages = append(pages, f)
		}
	}
	idx, err := site.Build(s.cfg.DocsDir, "Documentation", pages)
	if err != nil {
		s.log.Error("site index failed", "error", err)
		jsonError(w, "failed to build index", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := idx.Render(&buf); err != nil {
		jsonError(w, "failed to render index", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
