package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/scriptcoach/internal/doctree"
)

// DOCXParser handles .docx files. Body paragraphs are joined with a single
// newline, headings included; tables and drawings are skipped.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// go-docx needs a ReaderAt+size; uploads are already in memory.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var paras []string
	for _, item := range doc.Document.Body.Items {
		if para, ok := item.(*docx.Paragraph); ok {
			paras = append(paras, docxParagraphText(para))
		}
	}

	tree := &doctree.DocTree{Title: trimExt(filename)}
	if text := strings.TrimSpace(strings.Join(paras, "\n")); text != "" {
		tree.Children = []*doctree.DocNode{{Text: text}}
	}
	return tree, nil
}

// docxParagraphText returns the visible text of a paragraph. Tabs and line
// breaks inside runs are kept.
func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		switch c := child.(type) {
		case *docx.Run:
			writeRunText(&buf, c)
		case *docx.Hyperlink:
			writeRunText(&buf, &c.Run)
		}
	}
	return buf.String()
}

func writeRunText(buf *strings.Builder, run *docx.Run) {
	for _, rc := range run.Children {
		switch x := rc.(type) {
		case *docx.Text:
			buf.WriteString(x.Text)
		case *docx.Tab:
			buf.WriteByte('\t')
		case *docx.BarterRabbet:
			buf.WriteByte('\n')
		}
	}
}
