package doctree

import "strings"

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading (empty for leaf text)
	Text     string     // Text content of this node (may be empty for container nodes)
	Page     int        // Source page (0 if N/A)
	Children []*DocNode // Subsections
}

// Text flattens the tree in reading order. Each heading is followed by its
// own text and then its subsections; blocks are separated by a blank line.
// A block is trimmed at its ends only, never reflowed. The document title is
// not included.
func (t *DocTree) Text() string {
	if t == nil {
		return ""
	}
	var blocks []string
	for _, child := range t.Children {
		blocks = child.appendBlocks(blocks)
	}
	return strings.Join(blocks, "\n\n")
}

func (n *DocNode) appendBlocks(blocks []string) []string {
	if s := strings.TrimSpace(n.Title); s != "" {
		blocks = append(blocks, s)
	}
	if s := strings.TrimSpace(n.Text); s != "" {
		blocks = append(blocks, s)
	}
	for _, child := range n.Children {
		blocks = child.appendBlocks(blocks)
	}
	return blocks
}
