package enhance

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/cutedoc/internal/doctree"
	"github.com/dgallion1/cutedoc/internal/parser"
	"github.com/dgallion1/cutedoc/internal/prefs"
)

// Enhancer decorates DDoc pages.
type Enhancer struct {
	Classifier doctree.Classifier
	// ImagesPath prefixes category icon file names.
	ImagesPath string
	// ToggleBase is the URL prefix of the panel toggle endpoint. Empty
	// leaves the panel headings as plain text.
	ToggleBase string

	log *slog.Logger
}

// Result reports what a pass changed.
type Result struct {
	Declarations int `json:"declarations"`
	Styled       int `json:"styled"`
	NavEntries   int `json:"nav_entries"`
	LinksFixed   int `json:"links_fixed"`
}

// New creates an Enhancer. A nil logger discards output.
func New(c doctree.Classifier, imagesPath, toggleBase string, log *slog.Logger) *Enhancer {
	if imagesPath == "" {
		imagesPath = DefaultImagesPath
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Enhancer{
		Classifier: c,
		ImagesPath: imagesPath,
		ToggleBase: toggleBase,
		log:        log,
	}
}

// Apply decorates a parsed page in place. returnPath is the page's own URL
// path, used by the panel toggle links.
func (e *Enhancer) Apply(page *parser.Page, st prefs.State, returnPath string) Result {
	var res Result
	res.Declarations = len(parser.FindAll(page.Root, isDecl))
	res.Styled = Style(page.Root, e.Classifier)

	nav := doctree.BuildNav(page.Tree.Decls, e.Classifier)
	res.NavEntries = nav.Count()
	if childs := parser.FindByID(page.Root, "childs"); childs != nil {
		childs.AppendChild(RenderNav(nav, e.ImagesPath))
	} else {
		e.log.Debug("page has no navigation container", "page", page.Tree.Title)
	}

	res.LinksFixed = FixModuleLinks(page.Root)
	ApplyPanels(page.Root, st, e.ToggleBase, returnPath)
	return res
}

// Enhance parses a page from r, decorates it and writes it to w.
func (e *Enhancer) Enhance(r io.Reader, w io.Writer, filename string, st prefs.State, returnPath string) (Result, error) {
	page, err := parser.Parse(r, filename)
	if err != nil {
		return Result{}, err
	}
	res := e.Apply(page, st, returnPath)
	if err := page.Render(w); err != nil {
		return res, fmt.Errorf("render %s: %w", filename, err)
	}
	return res, nil
}
