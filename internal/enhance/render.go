package enhance

import (
	"strings"

	"github.com/dgallion1/cutedoc/internal/doctree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultImagesPath is where category icons live, relative to the page.
const DefaultImagesPath = "images/"

// RenderNav turns a navigation tree into a <ul> element. Entries become
// <li> items with an icon and an anchor link; nested trees become nested
// <ul> elements at the same position.
func RenderNav(t *doctree.NavTree, imagesPath string) *html.Node {
	if imagesPath != "" && !strings.HasSuffix(imagesPath, "/") {
		imagesPath += "/"
	}
	ul := element(atom.Ul)
	if t == nil {
		return ul
	}
	for _, it := range t.Items {
		switch {
		case it.Entry != nil:
			ul.AppendChild(renderEntry(it.Entry, imagesPath))
		case it.Sub != nil:
			ul.AppendChild(RenderNav(it.Sub, imagesPath))
		}
	}
	return ul
}

func renderEntry(e *doctree.NavEntry, imagesPath string) *html.Node {
	label := e.Category.Label()
	img := element(atom.Img,
		html.Attribute{Key: "src", Val: imagesPath + e.Category.Icon()},
		html.Attribute{Key: "alt", Val: label},
		html.Attribute{Key: "title", Val: label},
	)
	a := element(atom.A, html.Attribute{Key: "href", Val: e.Anchor})
	a.AppendChild(&html.Node{Type: html.TextNode, Data: e.Name})

	li := element(atom.Li)
	li.AppendChild(img)
	li.AppendChild(a)
	return li
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}
