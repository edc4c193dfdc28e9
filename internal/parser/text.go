package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/statgest/internal/doctree"
)

// TextParser handles plain text files. Each non-blank line becomes a node,
// so statutes written one article per line split correctly.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &doctree.Document{
		Title: baseTitle(filename),
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		doc.Nodes = append(doc.Nodes, doctree.Node{
			ID:        positionalID("para", len(doc.Nodes)+1),
			Fragments: []string{line},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return doc, nil
}
