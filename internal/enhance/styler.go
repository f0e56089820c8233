package enhance

import (
	"github.com/dgallion1/cutedoc/internal/doctree"
	"github.com/dgallion1/cutedoc/internal/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Style wraps the content of every declaration in a category span, e.g.
// <span class="classdecl">. Declarations without a style keyword are left
// alone. It returns the number of declarations wrapped.
func Style(root *html.Node, c doctree.Classifier) int {
	n := 0
	for _, d := range parser.FindAll(root, isDecl) {
		kw := c.StyleKeyword(parser.Decl(d))
		if kw == "" {
			continue
		}
		wrapChildren(d, kw+"decl")
		n++
	}
	return n
}

func isDecl(n *html.Node) bool {
	return parser.HasClass(n, "decl")
}

// wrapChildren moves all children of n into a new span with class.
func wrapChildren(n *html.Node, class string) {
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		span.AppendChild(c)
		c = next
	}
	n.AppendChild(span)
}
