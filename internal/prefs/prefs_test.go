package prefs

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// replay copies Set-Cookie headers from a response onto a new request.
func replay(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestStore_WriteThenRead(t *testing.T) {
	s := Store{}
	rec := httptest.NewRecorder()
	s.Write(rec, "modules", "1", 0)

	v, ok := s.Read(replay(rec), "modules")
	if !ok {
		t.Fatal("expected modules cookie to be present")
	}
	if v != "1" {
		t.Errorf("expected %q, got %q", "1", v)
	}
}

func TestStore_ReadUnset(t *testing.T) {
	s := Store{}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if v, ok := s.Read(req, "jumper"); ok {
		t.Errorf("expected absence, got %q", v)
	}
}

func TestStore_SessionAndExpiring(t *testing.T) {
	s := Store{}
	rec := httptest.NewRecorder()
	s.Write(rec, "modules", "0", 0)
	s.Write(rec, "jumper", "1", 7)

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	if !cookies[0].Expires.IsZero() || cookies[0].MaxAge != 0 {
		t.Errorf("expected session cookie, got expires=%v maxage=%d", cookies[0].Expires, cookies[0].MaxAge)
	}
	if cookies[1].MaxAge != 7*24*60*60 {
		t.Errorf("expected max-age of 7 days, got %d", cookies[1].MaxAge)
	}
	if cookies[1].Path != "/" {
		t.Errorf("expected path /, got %q", cookies[1].Path)
	}
}

func TestReadCookie(t *testing.T) {
	tests := []struct {
		header string
		key    string
		want   string
		ok     bool
	}{
		{"modules=1; jumper=0", "jumper", "0", true},
		{"modules=1;   jumper=1", "jumper", "1", true},
		{"xmodules=1; modules=0", "modules", "0", true},
		{"modules=", "modules", "", true},
		{"", "modules", "", false},
		{"jumper=1", "modules", "", false},
		{"modules=1; modules=0", "modules", "1", true},
	}
	for _, tt := range tests {
		got, ok := ReadCookie(tt.header, tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ReadCookie(%q, %q) = %q, %v; want %q, %v", tt.header, tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStore_LoadSave(t *testing.T) {
	s := Store{TTLDays: 30}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if st := s.Load(req); st.ModulesOpen || st.JumperOpen {
		t.Fatalf("expected closed panels without cookies, got %+v", st)
	}

	rec := httptest.NewRecorder()
	s.Save(rec, State{ModulesOpen: true})
	st := s.Load(replay(rec))
	if !st.ModulesOpen || st.JumperOpen {
		t.Errorf("unexpected state after round trip: %+v", st)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "modules=true; jumper=1")
	st = s.Load(req)
	if st.ModulesOpen {
		t.Error("only \"1\" should open a panel")
	}
	if !st.JumperOpen {
		t.Error("expected jumper open")
	}
}

func TestState_Toggle(t *testing.T) {
	var st State
	st = st.ToggleModules()
	if !st.ModulesOpen || st.JumperOpen {
		t.Fatalf("unexpected state: %+v", st)
	}
	next, err := st.Toggle(PanelJumper)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.JumperOpen || !next.ModulesOpen {
		t.Errorf("unexpected state: %+v", next)
	}
	if st.JumperOpen {
		t.Error("Toggle must not mutate the receiver")
	}
	if _, err := st.Toggle("sidebar"); err == nil || !strings.Contains(err.Error(), "sidebar") {
		t.Errorf("expected unknown panel error, got %v", err)
	}
}
