package doctree

// DocTree is the declaration listing of one documentation page.
type DocTree struct {
	Title string      // Page title (from <title> or filename)
	Decls []*DeclNode // Top-level entries of the content list
}

// Kind says how a DeclNode takes part in navigation.
type Kind int

const (
	KindOther Kind = iota // ignored by navigation
	KindDecl              // a declaration (dt.decl)
	KindGroup             // a description holding nested declarations (dd.decldd)
)

// DeclNode is one entry of a declaration list.
type DeclNode struct {
	Kind     Kind
	Text     string      // Rendered text, used for keyword matching
	Name     string      // Text of the first inner link
	HasName  bool        // False when the node has no inner link
	Tag      string      // Explicit category from the generator, if any
	Children []*DeclNode // Nested entries (groups only)
}

// SelfName is the display name of a declaration without an inner link.
const SelfName = "this"

// DisplayName returns the name used for the navigation entry and anchor.
// A declaration whose link is missing or has no text is named "this", so
// an empty <a name="e"></a> never yields an entry with a blank label.
func (d *DeclNode) DisplayName() string {
	if !d.HasName || d.Name == "" {
		return SelfName
	}
	return d.Name
}

// NavTree is one level of the navigation list.
type NavTree struct {
	Items []NavItem
}

// NavItem is either a leaf entry or a nested list spliced in from a group.
type NavItem struct {
	Entry *NavEntry
	Sub   *NavTree
}

// NavEntry links to a single declaration.
type NavEntry struct {
	Category Category
	Name     string
	Anchor   string // "#" + Name
}

// Count returns the number of entries in the tree, at every depth.
func (t *NavTree) Count() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, it := range t.Items {
		if it.Entry != nil {
			n++
		}
		n += it.Sub.Count()
	}
	return n
}
