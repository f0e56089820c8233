package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handlePrefs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.prefs.Load(r))
}

// handleToggle flips one panel and saves both flags. Browsers following
// a heading link are sent back to the page; a POST without a return path
// gets the new state as JSON.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	st, err := s.prefs.Load(r).Toggle(chi.URLParam(r, "panel"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	s.prefs.Save(w, st)

	ret := r.FormValue("return")
	if ret == "" && r.Method == http.MethodPost {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(st)
		return
	}
	if !isLocalPath(ret) {
		ret = "/"
	}
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

// isLocalPath accepts absolute paths on this host only.
func isLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return false
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}
