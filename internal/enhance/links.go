package enhance

import (
	"strings"

	"github.com/dgallion1/cutedoc/internal/parser"
	"golang.org/x/net/html"
)

// ModuleFile maps a module name to its page, e.g. "std.stdio" to
// "std_stdio.html".
func ModuleFile(module string) string {
	return strings.ReplaceAll(module, ".", "_") + ".html"
}

// FixModuleLinks points the module list links at their pages. Each
// <small>(pkg.mod)</small> inside #modules names the module of the links
// next to it. It returns the number of links rewritten.
func FixModuleLinks(root *html.Node) int {
	modules := parser.FindByID(root, "modules")
	if modules == nil {
		return 0
	}
	n := 0
	for _, small := range parser.FindAll(modules, func(n *html.Node) bool { return n.Data == "small" }) {
		text := []rune(parser.Text(small))
		if len(text) < 2 || small.Parent == nil {
			continue
		}
		href := ModuleFile(string(text[1 : len(text)-1]))
		for _, a := range parser.ChildElements(small.Parent, "a") {
			parser.SetAttr(a, "href", href)
			n++
		}
	}
	return n
}
