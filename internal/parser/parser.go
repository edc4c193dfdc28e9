package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/statgest/internal/doctree"
)

// Parser converts raw document bytes into an ordered sequence of text-bearing nodes.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Document, error)
}

// Options tunes format-specific parsing.
type Options struct {
	NodeSelector         string // CSS selector for HTML nodes, "p" if empty.
	PDFFallbackPdftotext bool
}

// ErrUnsupportedFormat is returned by ForFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported file extension")

// SupportedExtensions lists the file extensions ForFile accepts.
var SupportedExtensions = []string{".html", ".htm", ".txt", ".md", ".markdown", ".csv", ".docx", ".pdf"}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{Selector: opts.NodeSelector}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions, " "))
	}
}

// baseTitle strips the directory and extension from a filename.
func baseTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func positionalID(prefix string, n int) string {
	return fmt.Sprintf("%s-%d", prefix, n)
}
