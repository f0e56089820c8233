// Package site renders the directory index served when a documentation
// tree has no index.html of its own.
package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// ReadmeFile is rendered above the page list when present in the docs root.
const ReadmeFile = "README.md"

// Page is one entry of the index.
type Page struct {
	Module string // e.g. "std.stdio"
	Href   string // relative link, e.g. "std_stdio.html"
}

// Index is the generated landing page of a documentation tree.
type Index struct {
	Title  string
	Readme template.HTML
	Pages  []Page
}

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(highlighting.WithStyle("github")),
	),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

var indexTmpl = template.Must(template.New("index").Parse(indexTemplate))

// ModuleName derives a module name from a page path: the extension is
// dropped and both "/" and "_" become ".". It is the inverse of
// enhance.ModuleFile for pages in the docs root.
func ModuleName(rel string) string {
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	return strings.NewReplacer("/", ".", "_", ".").Replace(rel)
}

// Build assembles the index for docsDir from the given page paths
// (relative, slash separated), ordered naturally by module name so that
// "std.file2" precedes "std.file10". index.html itself is never listed.
func Build(docsDir, title string, pages []string) (*Index, error) {
	idx := &Index{Title: title}
	for _, p := range pages {
		if path.Base(p) == "index.html" && path.Dir(p) == "." {
			continue
		}
		idx.Pages = append(idx.Pages, Page{Module: ModuleName(p), Href: p})
	}
	sort.Slice(idx.Pages, func(i, j int) bool {
		return natural.Less(idx.Pages[i].Module, idx.Pages[j].Module)
	})

	readme, err := os.ReadFile(filepath.Join(docsDir, ReadmeFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", ReadmeFile, err)
	default:
		var buf bytes.Buffer
		if err := md.Convert(readme, &buf); err != nil {
			return nil, fmt.Errorf("converting markdown: %w", err)
		}
		idx.Readme = template.HTML(buf.String())
	}
	return idx, nil
}

// Render writes the index as a complete HTML document.
func (idx *Index) Render(w io.Writer) error {
	if err := indexTmpl.Execute(w, idx); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	return nil
}
