package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestModuleName(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"std_stdio.html", "std.stdio"},
		{"core_sync_mutex.htm", "core.sync.mutex"},
		{"etc/c/zlib.html", "etc.c.zlib"},
		{"object.html", "object"},
	}
	for _, tt := range tests {
		if got := ModuleName(tt.rel); got != tt.want {
			t.Errorf("ModuleName(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestBuild_SortsAndSkipsIndex(t *testing.T) {
	idx, err := Build(t.TempDir(), "Docs", []string{"std_stdio.html", "index.html", "core_atomic.html"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(idx.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %+v", idx.Pages)
	}
	if idx.Pages[0].Module != "core.atomic" || idx.Pages[1].Module != "std.stdio" {
		t.Errorf("expected sorted modules, got %+v", idx.Pages)
	}
	if idx.Readme != "" {
		t.Errorf("expected no readme, got %q", idx.Readme)
	}
}

func TestBuild_NaturalOrder(t *testing.T) {
	idx, err := Build(t.TempDir(), "Docs", []string{"std_file10.html", "std_file2.html", "std_file1.html"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, p := range idx.Pages {
		got = append(got, p.Module)
	}
	if want := "std.file1,std.file2,std.file10"; strings.Join(got, ",") != want {
		t.Errorf("expected %s, got %v", want, got)
	}
}

func TestBuild_HighlightsCode(t *testing.T) {
	dir := t.TempDir()
	readme := "```d\nimport std.stdio;\n```\n"
	if err := os.WriteFile(filepath.Join(dir, ReadmeFile), []byte(readme), 0o644); err != nil {
		t.Fatal(err)
	}
	idx, err := Build(dir, "Docs", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(idx.Readme), "<pre") || !strings.Contains(string(idx.Readme), "stdio") {
		t.Errorf("expected highlighted code block, got %q", idx.Readme)
	}
}

func TestBuild_RendersReadme(t *testing.T) {
	dir := t.TempDir()
	readme := "# Phobos\n\nThe **standard** library.\n"
	if err := os.WriteFile(filepath.Join(dir, ReadmeFile), []byte(readme), 0o644); err != nil {
		t.Fatal(err)
	}
	idx, err := Build(dir, "Phobos", []string{"std_stdio.html"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(idx.Readme), "<strong>standard</strong>") {
		t.Errorf("expected rendered markdown, got %q", idx.Readme)
	}
	if !strings.Contains(string(idx.Readme), `<h1 id="phobos">Phobos</h1>`) {
		t.Errorf("expected heading with id, got %q", idx.Readme)
	}
}

func TestIndex_Render(t *testing.T) {
	idx := &Index{
		Title:  "Docs <draft>",
		Readme: "<p>hello</p>",
		Pages:  []Page{{Module: "std.stdio", Href: "std_stdio.html"}},
	}
	var b strings.Builder
	if err := idx.Render(&b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"<title>Docs &lt;draft&gt;</title>",
		"<p>hello</p>",
		`<li><a href="std_stdio.html">std.stdio</a></li>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestIndex_RenderEmpty(t *testing.T) {
	var b strings.Builder
	if err := (&Index{Title: "Empty"}).Render(&b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(b.String(), "No pages found.") {
		t.Errorf("expected empty notice, got %s", b.String())
	}
	if strings.Contains(b.String(), `class="readme"`) {
		t.Error("expected no readme block")
	}
}
