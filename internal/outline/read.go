package outline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
)

// Heading is one styled paragraph of an outline document.
type Heading struct {
	Level int // 0 for the Title paragraph
	Text  string
}

// Read returns the Title and HeadingN paragraphs of a .docx document in
// order. Unstyled paragraphs are skipped.
func Read(r io.ReaderAt, size int64) ([]Heading, error) {
	doc, err := docx.Parse(r, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}
	var out []Heading
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		level, ok := headingLevel(para)
		if !ok {
			continue
		}
		out = append(out, Heading{Level: level, Text: paragraphText(para)})
	}
	return out, nil
}

func headingLevel(para *docx.Paragraph) (int, bool) {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0, false
	}
	style := strings.ReplaceAll(strings.ToLower(para.Properties.Style.Val), " ", "")
	if style == "title" {
		return 0, true
	}
	n, err := strconv.Atoi(strings.TrimPrefix(style, "heading"))
	if err != nil || !strings.HasPrefix(style, "heading") || n < 1 || n > maxHeading {
		return 0, false
	}
	return n, true
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
