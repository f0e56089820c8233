package doctree

// BuildNav maps a declaration list onto a navigation tree. Declarations
// become entries; groups are recursed into and their list is nested in
// place, without an entry of their own. The result is never nil.
func BuildNav(decls []*DeclNode, c Classifier) *NavTree {
	tree := &NavTree{Items: []NavItem{}}
	for _, d := range decls {
		switch d.Kind {
		case KindDecl:
			name := d.DisplayName()
			tree.Items = append(tree.Items, NavItem{Entry: &NavEntry{
				Category: c.ClassifyDecl(d),
				Name:     name,
				Anchor:   "#" + name,
			}})
		case KindGroup:
			tree.Items = append(tree.Items, NavItem{Sub: BuildNav(d.Children, c)})
		}
	}
	return tree
}
