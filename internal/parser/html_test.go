package parser

import (
	"errors"
	"strings"
	"testing"
)

const statutePage = `<!DOCTYPE html>
<html>
<head><title>개인정보 보호법</title><style>p { color: red; }</style></head>
<body>
<p id="pgroup">제1장 총칙</p>
<p id="p1"><span>제1조</span><span>(목적)</span> 이 법은 <b>개인정보</b>를 보호한다.</p>
<div><p id="p2">① 제1조에 따른<br/>사항<script>var x = "제9조";</script></p></div>
<p>목록 없음</p>
</body>
</html>`

func TestHTMLParser_ParagraphNodes(t *testing.T) {
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(statutePage), "privacy.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "개인정보 보호법" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}
	if len(doc.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(doc.Nodes))
	}

	ids := []string{"pgroup", "p1", "p2", ""}
	for i, want := range ids {
		if doc.Nodes[i].ID != want {
			t.Errorf("node[%d]: expected id %q, got %q", i, want, doc.Nodes[i].ID)
		}
	}

	n := doc.Nodes[1]
	if got := n.Text(); got != "제1조(목적)이 법은개인정보를 보호한다." {
		t.Errorf("unexpected stripped text %q", got)
	}
	if got := n.JoinedText(" "); got != "제1조 (목적) 이 법은 개인정보 를 보호한다." {
		t.Errorf("unexpected joined text %q", got)
	}
}

func TestHTMLParser_SkipsScriptText(t *testing.T) {
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(statutePage), "privacy.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := doc.Nodes[2].JoinedText(" ")
	if strings.Contains(got, "제9조") {
		t.Errorf("script content leaked into node text: %q", got)
	}
	if got != "① 제1조에 따른 사항" {
		t.Errorf("unexpected joined text %q", got)
	}
}

func TestHTMLParser_CustomSelector(t *testing.T) {
	input := `<html><body><div class="art" id="a1">Article 1 Scope</div><p>ignored</p><div class="art" id="a2">Article 2</div></body></html>`
	p := &HTMLParser{Selector: "div.art"}
	doc, err := p.Parse(strings.NewReader(input), "act.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "act" {
		t.Errorf("expected filename title %q, got %q", "act", doc.Title)
	}
	if len(doc.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(doc.Nodes))
	}
	if doc.Nodes[1].ID != "a2" || doc.Nodes[1].Text() != "Article 2" {
		t.Errorf("unexpected node %+v", doc.Nodes[1])
	}
}

func TestHTMLParser_NoMatchingNodes(t *testing.T) {
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader("<html><body><div>text</div></body></html>"), "empty.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Nodes) != 0 {
		t.Errorf("expected 0 nodes, got %d", len(doc.Nodes))
	}
}

func TestCSVParser_IDAndTextColumns(t *testing.T) {
	input := "id,text,note\nA1,Article 1 Scope,x\n,Body text,y\n"
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(input), "act.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(doc.Nodes))
	}
	if doc.Nodes[0].ID != "A1" || doc.Nodes[0].Text() != "Article 1 Scope" {
		t.Errorf("unexpected first node %+v", doc.Nodes[0])
	}
	if doc.Nodes[1].ID != "row-2" {
		t.Errorf("expected positional fallback id, got %q", doc.Nodes[1].ID)
	}
}

func TestForFile(t *testing.T) {
	for _, name := range []string{"a.html", "a.HTM", "a.md", "a.txt", "a.csv", "a.pdf", "a.docx"} {
		if _, err := ForFile(name, Options{}); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
	}
	_, err := ForFile("a.hwp", Options{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), ".docx") {
		t.Errorf("expected the supported extensions in %q", err)
	}

	for _, ext := range SupportedExtensions {
		if _, err := ForFile("statute"+ext, Options{}); err != nil {
			t.Errorf("listed extension %s rejected: %v", ext, err)
		}
	}

	p, _ := ForFile("law.html", Options{NodeSelector: "li"})
	if hp, ok := p.(*HTMLParser); !ok || hp.Selector != "li" {
		t.Errorf("expected HTML parser with selector li, got %#v", p)
	}
}
