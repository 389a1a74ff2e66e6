package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/scriptcoach/internal/doctree"
)

// HTMLParser handles HTML files, typically scripts exported from a word
// processor or copied from a web page. Headings become sections; paragraphs,
// list items and table cells become text blocks. A <br> inside a block is
// kept as a line break so dialogue exported one line per cue survives.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := &doctree.DocTree{Title: trimExt(filename)}
	if t := findElement(doc, atom.Title); t != nil {
		if title := inlineText(t); title != "" {
			tree.Title = title
		}
	}

	b := newSectionBuilder()
	start := findElement(doc, atom.Body)
	if start == nil {
		start = doc
	}
	walkHTML(b, start)
	tree.Children = b.sections()
	return tree, nil
}

func walkHTML(b *sectionBuilder, n *html.Node) {
	if n.Type == html.ElementNode {
		if skipElement(n.DataAtom) {
			return
		}
		if level := headingLevel(n.DataAtom); level > 0 {
			b.heading(level, inlineText(n))
			return
		}
		switch n.DataAtom {
		case atom.P, atom.Li, atom.Td, atom.Th, atom.Blockquote, atom.Dd, atom.Dt, atom.Figcaption:
			b.block(inlineText(n))
			return
		case atom.Pre:
			b.block(strings.Trim(rawText(n), "\n"))
			return
		case atom.Div, atom.Section, atom.Article, atom.Main:
			if !hasBlockDescendant(n) {
				b.block(inlineText(n))
				return
			}
		}
	}
	if n.Type == html.TextNode && n.Parent != nil && n.Parent.DataAtom == atom.Body {
		// Loose text directly in <body>.
		b.block(collapseSpaces(n.Data))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkHTML(b, c)
	}
}

func hasBlockDescendant(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.P, atom.Li, atom.Ul, atom.Ol, atom.Table, atom.Pre, atom.Blockquote,
			atom.Div, atom.Section, atom.Article, atom.Main, atom.Dl:
			return true
		}
		if headingLevel(c.DataAtom) > 0 || hasBlockDescendant(c) {
			return true
		}
	}
	return false
}

func skipElement(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Nav, atom.Footer, atom.Header:
		return true
	}
	return false
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// inlineText returns the text of n with HTML whitespace collapsed. Each <br>
// becomes a newline.
func inlineText(n *html.Node) string {
	var lines []string
	var cur strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			cur.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			lines = append(lines, collapseSpaces(cur.String()))
			cur.Reset()
			return
		case n.Type == html.ElementNode && skipElement(n.DataAtom):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	lines = append(lines, collapseSpaces(cur.String()))
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// rawText returns the text of n verbatim.
func rawText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
