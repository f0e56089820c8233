package enhance

import (
	"net/url"
	"strings"

	"github.com/dgallion1/cutedoc/internal/parser"
	"github.com/dgallion1/cutedoc/internal/prefs"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const hiddenStyle = "display: none"

// panel ties a collapsible list to its outer box and preference name.
type panel struct {
	id    string
	outer string
	name  string
}

var panels = []panel{
	{id: "childs", outer: "childsouter", name: prefs.PanelJumper},
	{id: "modules", outer: "modulesouter", name: prefs.PanelModules},
}

func isOpen(st prefs.State, name string) bool {
	if name == prefs.PanelModules {
		return st.ModulesOpen
	}
	return st.JumperOpen
}

// ApplyPanels hides the jump-to and modules lists unless st has them
// open. When toggleBase is set, each panel heading becomes a link to
// toggleBase/<panel>?return=<returnPath>.
func ApplyPanels(root *html.Node, st prefs.State, toggleBase, returnPath string) {
	for _, p := range panels {
		if box := parser.FindByID(root, p.id); box != nil && !isOpen(st, p.name) {
			hide(box)
		}
		if toggleBase == "" {
			continue
		}
		outer := parser.FindByID(root, p.outer)
		if outer == nil {
			continue
		}
		headings := parser.FindAll(outer, func(n *html.Node) bool { return n.Data == "h3" })
		if len(headings) == 0 {
			continue
		}
		href := strings.TrimSuffix(toggleBase, "/") + "/" + p.name
		if returnPath != "" {
			href += "?return=" + url.QueryEscape(returnPath)
		}
		linkChildren(headings[0], href)
	}
}

func hide(n *html.Node) {
	style := strings.TrimSpace(parser.Attr(n, "style"))
	switch {
	case style == "":
		style = hiddenStyle
	case strings.HasSuffix(style, ";"):
		style += " " + hiddenStyle
	default:
		style += "; " + hiddenStyle
	}
	parser.SetAttr(n, "style", style)
}

// linkChildren moves the children of n into an anchor pointing at href.
func linkChildren(n *html.Node, href string) {
	a := element(atom.A,
		html.Attribute{Key: "href", Val: href},
		html.Attribute{Key: "class", Val: "toggle"},
	)
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		a.AppendChild(c)
		c = next
	}
	n.AppendChild(a)
}
