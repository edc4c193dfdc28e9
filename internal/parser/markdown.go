package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/statgest/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Each leaf block
// (heading, paragraph, list item text, code block) becomes a node.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := &doctree.Document{
		Title: baseTitle(filename),
	}

	var visit func(n ast.Node)
	visit = func(n ast.Node) {
		switch n.Kind() {
		case ast.KindDocument, ast.KindList, ast.KindListItem, ast.KindBlockquote:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				visit(c)
			}
			return
		}

		var fragments []string
		switch n.Kind() {
		case ast.KindCodeBlock, ast.KindFencedCodeBlock, ast.KindHTMLBlock:
			fragments = blockLines(n, src)
		default:
			fragments = inlineFragments(n, src)
		}
		if strings.TrimSpace(strings.Join(fragments, "")) == "" {
			return
		}
		doc.Nodes = append(doc.Nodes, doctree.Node{
			ID:        positionalID("para", len(doc.Nodes)+1),
			Fragments: fragments,
		})
	}
	visit(root)

	return doc, nil
}

// inlineFragments returns the inline text of a block, one fragment per line.
func inlineFragments(n ast.Node, src []byte) []string {
	var lines []string
	var current strings.Builder

	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				current.Write(t.Segment.Value(src))
				if t.SoftLineBreak() || t.HardLineBreak() {
					lines = append(lines, current.String())
					current.Reset()
				}
			case *ast.String:
				current.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// blockLines returns the raw source lines of a literal block.
func blockLines(n ast.Node, src []byte) []string {
	segs := n.Lines()
	out := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		out = append(out, strings.TrimRight(string(seg.Value(src)), "\r\n"))
	}
	return out
}
