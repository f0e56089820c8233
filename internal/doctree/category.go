package doctree

import "strings"

// Category is the kind of program entity a declaration documents.
type Category int

const (
	CategoryVariable Category = iota
	CategoryStruct
	CategoryClass
	CategoryEnum
	CategoryTemplate
	CategoryAlias
	CategoryProperty
	CategoryFunction
)

var categoryInfo = map[Category]struct {
	name  string
	icon  string
	label string
}{
	CategoryStruct:   {"struct", "struct.png", "Struct"},
	CategoryClass:    {"class", "class.png", "Class"},
	CategoryEnum:     {"enum", "enum.png", "Enum"},
	CategoryTemplate: {"template", "template.png", "Template"},
	CategoryAlias:    {"alias", "alias.png", "Alias"},
	CategoryProperty: {"property", "property.png", "Property"},
	CategoryFunction: {"function", "func.png", "Function"},
	CategoryVariable: {"variable", "var.png", "Variable"},
}

// String returns the lower-case category name.
func (c Category) String() string { return categoryInfo[c].name }

// Icon returns the icon file name, e.g. "struct.png".
func (c Category) Icon() string { return categoryInfo[c].icon }

// Label returns the human-readable name used for alt and title text.
func (c Category) Label() string { return categoryInfo[c].label }

// ParseCategory maps an explicit tag to a category. Short forms used by
// the icon names ("func", "var") are accepted.
func ParseCategory(tag string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "struct":
		return CategoryStruct, true
	case "class":
		return CategoryClass, true
	case "enum":
		return CategoryEnum, true
	case "template":
		return CategoryTemplate, true
	case "alias":
		return CategoryAlias, true
	case "property":
		return CategoryProperty, true
	case "function", "func":
		return CategoryFunction, true
	case "variable", "var":
		return CategoryVariable, true
	}
	return CategoryVariable, false
}

// keywordOrder is the match precedence for navigation icons.
// Functions are detected separately by their parameter list.
var keywordOrder = []struct {
	keyword  string
	category Category
}{
	{"struct", CategoryStruct},
	{"class", CategoryClass},
	{"enum", CategoryEnum},
	{"template", CategoryTemplate},
	{"alias", CategoryAlias},
	{"@property", CategoryProperty},
}

// Classifier resolves declaration categories from rendered text.
type Classifier struct {
	// WholeWords restricts keyword matches to identifier boundaries, so a
	// function named "classify" is not taken for a class.
	WholeWords bool
}

// Classify returns the category of a declaration from its text. The first
// keyword found wins; text with a parameter list is a function; anything
// else is a variable.
func (c Classifier) Classify(text string) Category {
	for _, kw := range keywordOrder {
		if c.contains(text, kw.keyword) {
			return kw.category
		}
	}
	if strings.Contains(text, "(") {
		return CategoryFunction
	}
	return CategoryVariable
}

// ClassifyDecl prefers an explicit tag on the node and falls back to
// keyword matching on its text.
func (c Classifier) ClassifyDecl(d *DeclNode) Category {
	if d.Tag != "" {
		if cat, ok := ParseCategory(d.Tag); ok {
			return cat
		}
	}
	return c.Classify(d.Text)
}

// StyleKeyword returns the first of class, template, struct, alias that
// applies to the node, or "" if none does.
func (c Classifier) StyleKeyword(d *DeclNode) string {
	if d.Tag != "" {
		if cat, ok := ParseCategory(d.Tag); ok {
			switch cat {
			case CategoryClass, CategoryTemplate, CategoryStruct, CategoryAlias:
				return cat.String()
			}
			return ""
		}
	}
	for _, kw := range styleKeywords {
		if c.contains(d.Text, kw) {
			return kw
		}
	}
	return ""
}

var styleKeywords = []string{"class", "template", "struct", "alias"}

func (c Classifier) contains(text, keyword string) bool {
	if !c.WholeWords {
		return strings.Contains(text, keyword)
	}
	for off := 0; off < len(text); {
		i := strings.Index(text[off:], keyword)
		if i < 0 {
			return false
		}
		start := off + i
		end := start + len(keyword)
		if (start == 0 || !isIdentByte(text[start-1])) && (end == len(text) || !isIdentByte(text[end])) {
			return true
		}
		off = start + 1
	}
	return false
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
