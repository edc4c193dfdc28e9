package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/statgest/internal/doctree"
)

// CSVParser handles CSV exports of statutes. The first row is a header; each
// data row becomes a node. An "id" column supplies the identifier and a
// "text" column the content; without a text column all other cells are used.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &doctree.Document{
		Title: baseTitle(filename),
	}

	if len(records) == 0 {
		return doc, nil
	}

	idCol, textCol := -1, -1
	for i, h := range records[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			idCol = i
		case "text", "content":
			textCol = i
		}
	}

	for rowNo, row := range records[1:] {
		var fragments []string
		for i, cell := range row {
			if i == idCol {
				continue
			}
			if textCol >= 0 && i != textCol {
				continue
			}
			fragments = append(fragments, cell)
		}

		id := positionalID("row", rowNo+1)
		if idCol >= 0 && idCol < len(row) && strings.TrimSpace(row[idCol]) != "" {
			id = strings.TrimSpace(row[idCol])
		}

		doc.Nodes = append(doc.Nodes, doctree.Node{ID: id, Fragments: fragments})
	}

	return doc, nil
}
