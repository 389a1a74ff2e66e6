package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/scriptcoach/internal/doctree"
)

// ErrUnsupportedFormat is returned for file extensions no parser handles.
var ErrUnsupportedFormat = errors.New("unsupported file extension")

// DefaultPDFMaxPages is how many leading PDF pages are read.
const DefaultPDFMaxPages = 5

// Parser converts raw document bytes into a DocTree.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// Options tune the page-oriented parsers.
type Options struct {
	PDFMaxPages          int  // Pages read from the start of a PDF; <= 0 means DefaultPDFMaxPages.
	PDFFallbackPdftotext bool // Retry with the pdftotext binary when the Go reader fails.
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".text":     true,
	".rtf":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".text", ".rtf":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{MaxPages: opts.PDFMaxPages, FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Extensions returns the supported extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(SupportedExtensions))
	for ext := range SupportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extract parses data according to the extension of filename and returns
// the document text in reading order.
func Extract(filename string, data []byte, opts Options) (string, error) {
	p, err := ForFile(filename, opts)
	if err != nil {
		return "", err
	}
	tree, err := p.Parse(bytes.NewReader(data), filepath.Base(filename))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", filepath.Base(filename), err)
	}
	return tree.Text(), nil
}

// trimExt drops the extension of filename, whatever its case.
func trimExt(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
