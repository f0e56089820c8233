package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/cutedoc/internal/doctree"
	"golang.org/x/net/html"
)

// SupportedExtensions lists file extensions treated as documentation pages.
var SupportedExtensions = map[string]bool{
	".html": true,
	".htm":  true,
}

// IsPage reports whether filename is a documentation page.
func IsPage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Page is a parsed documentation page. Root may be modified in place and
// written back with Render.
type Page struct {
	Root *html.Node
	Tree *doctree.DocTree
}

// Parse reads a DDoc page and extracts its declaration listing.
func Parse(r io.Reader, filename string) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	base := filepath.Base(filename)
	tree := &doctree.DocTree{
		Title: strings.TrimSuffix(strings.TrimSuffix(base, ".html"), ".htm"),
		Decls: []*doctree.DeclNode{},
	}
	if title := findTitle(root); title != "" {
		tree.Title = title
	}

	if content := FindByID(root, "content"); content != nil {
		tree.Decls = declList(ChildElements(content, "dl"))
	}

	return &Page{Root: root, Tree: tree}, nil
}

// Render serialises the page.
func (p *Page) Render(w io.Writer) error {
	return html.Render(w, p.Root)
}

// declList flattens the element children of the given lists into one
// ordered declaration sequence.
func declList(lists []*html.Node) []*doctree.DeclNode {
	decls := []*doctree.DeclNode{}
	for _, dl := range lists {
		for c := dl.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			decls = append(decls, Decl(c))
		}
	}
	return decls
}

// Decl converts one element of a declaration list. A dd.decldd without
// nested lists is only a description and yields KindOther.
func Decl(n *html.Node) *doctree.DeclNode {
	switch {
	case HasClass(n, "decl"):
		d := &doctree.DeclNode{
			Kind: doctree.KindDecl,
			Text: rawText(n),
			Tag:  Attr(n, "data-kind"),
		}
		if a := findElement(n, "a"); a != nil {
			d.Name = textContent(a)
			d.HasName = true
		}
		return d
	case HasClass(n, "decldd"):
		lists := ChildElements(n, "dl")
		if len(lists) == 0 {
			return &doctree.DeclNode{Kind: doctree.KindOther}
		}
		return &doctree.DeclNode{
			Kind:     doctree.KindGroup,
			Children: declList(lists),
		}
	}
	return &doctree.DeclNode{Kind: doctree.KindOther}
}
