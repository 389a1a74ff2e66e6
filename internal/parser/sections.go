package parser

import (
	"strings"

	"github.com/dgallion1/scriptcoach/internal/doctree"
)

// sectionBuilder nests text blocks under the most recent heading. Shared by
// the parsers of formats that mark headings explicitly.
type sectionBuilder struct {
	root    *doctree.DocNode
	stack   []*doctree.DocNode
	levels  []int
	pending []string
}

func newSectionBuilder() *sectionBuilder {
	root := &doctree.DocNode{}
	return &sectionBuilder{root: root, stack: []*doctree.DocNode{root}, levels: []int{0}}
}

// heading opens a section at level, closing any open sections at the same
// or a deeper level.
func (b *sectionBuilder) heading(level int, title string) {
	b.flush()
	for len(b.stack) > 1 && b.levels[len(b.levels)-1] >= level {
		b.stack = b.stack[:len(b.stack)-1]
		b.levels = b.levels[:len(b.levels)-1]
	}
	node := &doctree.DocNode{Title: title}
	parent := b.stack[len(b.stack)-1]
	parent.Children = append(parent.Children, node)
	b.stack = append(b.stack, node)
	b.levels = append(b.levels, level)
}

func (b *sectionBuilder) block(s string) {
	if strings.TrimSpace(s) != "" {
		b.pending = append(b.pending, s)
	}
}

func (b *sectionBuilder) flush() {
	if len(b.pending) == 0 {
		return
	}
	top := b.stack[len(b.stack)-1]
	text := strings.Join(b.pending, "\n\n")
	if top.Text != "" {
		text = top.Text + "\n\n" + text
	}
	top.Text = text
	b.pending = b.pending[:0]
}

// sections returns the top-level nodes. Text that came before the first
// heading, or all text when there were none, is the first node.
func (b *sectionBuilder) sections() []*doctree.DocNode {
	b.flush()
	nodes := b.root.Children
	if b.root.Text != "" {
		nodes = append([]*doctree.DocNode{{Text: b.root.Text}}, nodes...)
	}
	return nodes
}
