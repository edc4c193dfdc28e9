package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/statgest/internal/doctree"
	"golang.org/x/net/html"
)

// DefaultNodeSelector picks the paragraph elements statute pages are built from.
const DefaultNodeSelector = "p"

// HTMLParser handles HTML files. Every element matching Selector becomes a
// node, identified by its id attribute.
type HTMLParser struct {
	Selector string
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	page, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &doctree.Document{Title: baseTitle(filename)}
	if title := strings.TrimSpace(page.Find("title").First().Text()); title != "" {
		doc.Title = title
	}

	selector := p.Selector
	if selector == "" {
		selector = DefaultNodeSelector
	}

	page.Find(selector).Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		doc.Nodes = append(doc.Nodes, doctree.Node{
			ID:        id,
			Fragments: textFragments(s.Get(0)),
		})
	})

	return doc, nil
}

// textFragments collects descendant text nodes in document order.
func textFragments(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out = append(out, n.Data)
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "template":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}
