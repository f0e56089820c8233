package prefs

import (
	"net/http"
	"strings"
	"time"
)

// Flag values stored in the cookies.
const (
	valueOn  = "1"
	valueOff = "0"
)

// Store keeps preferences in cookies.
type Store struct {
	// TTLDays is the expiry horizon used by Save. Zero or less writes
	// session cookies.
	TTLDays int
	// Path scopes the cookies; "/" when empty.
	Path string
}

// Read returns the value of the named cookie from the request.
func (s Store) Read(r *http.Request, key string) (string, bool) {
	return ReadCookie(r.Header.Get("Cookie"), key)
}

// ReadCookie scans a raw Cookie header for key. Entries are split on ';'
// and leading spaces trimmed; the first entry starting with "key=" wins.
func ReadCookie(header, key string) (string, bool) {
	prefix := key + "="
	for _, c := range strings.Split(header, ";") {
		c = strings.TrimLeft(c, " ")
		if strings.HasPrefix(c, prefix) {
			return c[len(prefix):], true
		}
	}
	return "", false
}

// Write sets a cookie on the response. ttlDays <= 0 makes it a session
// cookie.
func (s Store) Write(w http.ResponseWriter, key, value string, ttlDays int) {
	c := &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     s.path(),
		SameSite: http.SameSiteLaxMode,
	}
	if ttlDays > 0 {
		c.Expires = time.Now().Add(time.Duration(ttlDays) * 24 * time.Hour)
		c.MaxAge = ttlDays * 24 * 60 * 60
	}
	http.SetCookie(w, c)
}

// Load reads both panel flags. Missing or unrecognised values mean closed.
func (s Store) Load(r *http.Request) State {
	modules, _ := s.Read(r, PanelModules)
	jumper, _ := s.Read(r, PanelJumper)
	return State{
		ModulesOpen: modules == valueOn,
		JumperOpen:  jumper == valueOn,
	}
}

// Save persists both panel flags, overwriting earlier values.
func (s Store) Save(w http.ResponseWriter, st State) {
	s.Write(w, PanelModules, flag(st.ModulesOpen), s.TTLDays)
	s.Write(w, PanelJumper, flag(st.JumperOpen), s.TTLDays)
}

func (s Store) path() string {
	if s.Path == "" {
		return "/"
	}
	return s.Path
}

func flag(b bool) string {
	if b {
		return valueOn
	}
	return valueOff
}
