package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/scriptcoach/internal/doctree"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextParser handles plain text files. The decoded text is one node, kept
// exactly as written. RTF is read the same way; the text cleaner strips its
// markup later.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}

	tree := &doctree.DocTree{Title: trimExt(filename)}
	// Line endings and blank lines are left alone; the cleaner owns all
	// whitespace handling.
	if strings.TrimSpace(text) != "" {
		tree.Children = []*doctree.DocNode{{Text: text}}
	}
	return tree, nil
}

// decodeText converts raw bytes to UTF-8. A UTF-8 or UTF-16 byte order mark
// selects the encoding; without one the bytes are taken as UTF-8. Invalid
// sequences are dropped.
func decodeText(raw []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(bytes.ToValidUTF8(decoded, nil)), nil
}
