// Package outline exports a page's navigation tree as a Word document.
package outline

import (
	"fmt"
	"io"

	"github.com/dgallion1/cutedoc/internal/doctree"
	"github.com/fumiama/go-docx"
)

// maxHeading is the deepest heading style Word ships with by default
// that readers reliably map to an outline level.
const maxHeading = 6

// Export writes tree as a .docx outline. The page title is a Title
// paragraph; each entry is a heading whose level follows its nesting.
func Export(w io.Writer, title string, tree *doctree.NavTree) error {
	doc := docx.New().WithDefaultTheme()
	if title != "" {
		doc.AddParagraph().Style("Title").AddText(title)
	}
	addEntries(doc, tree, 1)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func addEntries(doc *docx.Docx, tree *doctree.NavTree, depth int) {
	if tree == nil {
		return
	}
	level := min(depth, maxHeading)
	for _, it := range tree.Items {
		switch {
		case it.Entry != nil:
			doc.AddParagraph().Style(fmt.Sprintf("Heading%d", level)).AddText(EntryText(it.Entry))
		case it.Sub != nil:
			addEntries(doc, it.Sub, depth+1)
		}
	}
}

// EntryText is the paragraph text for an entry, e.g. "Struct File".
func EntryText(e *doctree.NavEntry) string {
	return e.Category.Label() + " " + e.Name
}
