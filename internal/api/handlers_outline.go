package api

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/dgallion1/cutedoc/internal/doctree"
	"github.com/dgallion1/cutedoc/internal/outline"
	"github.com/dgallion1/cutedoc/internal/parser"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// handleOutline exports the navigation tree of ?page= as a .docx file.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")
	if page == "" {
		jsonError(w, "page query parameter is required", http.StatusBadRequest)
		return
	}
	rel, full := s.resolve(page)
	if !parser.IsPage(rel) {
		jsonError(w, fmt.Sprintf("not a documentation page: %s", rel), http.StatusBadRequest)
		return
	}

	f, err := os.Open(full)
	if err != nil {
		jsonError(w, "page not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	p, err := parser.Parse(f, path.Base(rel))
	if err != nil {
		jsonError(w, "failed to parse page: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	tree := doctree.BuildNav(p.Tree.Decls, s.enhancer.Classifier)

	var buf bytes.Buffer
	if err := outline.Export(&buf, p.Tree.Title, tree); err != nil {
		s.log.Error("outline export failed", "path", rel, "error", err)
		jsonError(w, "failed to export outline", http.StatusInternalServerError)
		return
	}

	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel)) + ".docx"
	w.Header().Set("Content-Type", docxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(buf.Bytes())
}
