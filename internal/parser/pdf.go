package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/dgallion1/scriptcoach/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. Only the first MaxPages pages are read. It
// tries the Go library first, then falls back to pdftotext if enabled.
type PDFParser struct {
	MaxPages          int
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	maxPages := p.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultPDFMaxPages
	}

	// ledongthuc/pdf opens by path and pdftotext needs one too.
	tmp, err := os.CreateTemp("", "scriptcoach-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	pages, err := extractPDFPages(tmpPath, maxPages)
	if (err != nil || blank(pages)) && p.FallbackPdftotext {
		if alt, altErr := extractPdftotext(tmpPath, maxPages); altErr == nil {
			pages, err = alt, nil
		} else if err == nil {
			err = altErr
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	tree := &doctree.DocTree{Title: trimExt(filename)}
	if text := joinPages(pages); text != "" {
		tree.Children = []*doctree.DocNode{{Text: text, Page: 1}}
	}
	return tree, nil
}

// joinPages joins page texts with a newline, empty pages included, and trims
// the result.
func joinPages(pages []string) string {
	return strings.TrimSpace(strings.Join(pages, "\n"))
}

// extractPDFPages returns the plain text of up to maxPages leading pages.
// The PDF library panics on some malformed files; that is reported as an
// error.
func extractPDFPages(path string, maxPages int) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := min(reader.NumPage(), maxPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

func extractPdftotext(path string, maxPages int) ([]string, error) {
	cmd := exec.Command("pdftotext", "-layout", "-l", strconv.Itoa(maxPages), path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return splitPages(string(out)), nil
}

// splitPages splits pdftotext output on its form-feed page separators.
func splitPages(text string) []string {
	return strings.Split(text, "\f")
}

func blank(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}
