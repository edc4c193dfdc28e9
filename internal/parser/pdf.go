package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dgallion1/statgest/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. Pages are read with ledongthuc/pdf, or with
// pdftotext when that fails and FallbackPdftotext is set. Each non-blank
// line becomes a node identified by its page and line number.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// ledongthuc/pdf opens by path.
	tmp, err := os.CreateTemp("", "statgest-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, err = io.Copy(tmp, r)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}

	pages, err := pdfPages(tmp.Name())
	if err != nil && p.FallbackPdftotext {
		pages, err = pdftotextPages(tmp.Name())
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	doc := &doctree.Document{Title: baseTitle(filename)}
	for pageNo, page := range pages {
		lineNo := 0
		for _, line := range strings.Split(page, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			lineNo++
			doc.Nodes = append(doc.Nodes, doctree.Node{
				ID:        fmt.Sprintf("page-%d-line-%d", pageNo+1, lineNo),
				Fragments: []string{line},
			})
		}
	}
	return doc, nil
}

// pdfPages returns the plain text of every page. Pages that fail to decode
// are kept empty so numbering stays aligned with the document.
func pdfPages(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := make([]string, reader.NumPage())
	for i := range pages {
		page := reader.Page(i + 1)
		if page.V.IsNull() {
			continue
		}
		if text, err := page.GetPlainText(nil); err == nil {
			pages[i] = text
		}
	}
	return pages, nil
}

// pdftotextPages shells out to poppler; it separates pages with form feeds.
func pdftotextPages(path string) ([]string, error) {
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return strings.Split(strings.TrimSuffix(string(out), "\f"), "\f"), nil
}
