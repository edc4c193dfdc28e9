package parser

import (
	"strings"
	"testing"
)

func TestTextParser_LineNodes(t *testing.T) {
	input := "First line one.\nFirst line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	want := []string{
		"First line one.",
		"First line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	if len(doc.Nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(doc.Nodes))
	}
	for i, w := range want {
		if got := doc.Nodes[i].Text(); got != w {
			t.Errorf("node[%d]: expected %q, got %q", i, w, got)
		}
	}
	if doc.Nodes[2].ID != "para-3" {
		t.Errorf("expected positional id %q, got %q", "para-3", doc.Nodes[2].ID)
	}
}

func TestTextParser_ConsecutiveArticleLines(t *testing.T) {
	input := "제1조(목적) 이 법은 목적을 정한다.\n제2조(정의) 용어의 뜻은 다음과 같다.\n제3조(과태료) 제1조를 위반하면 과태료를 부과한다."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "law.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(doc.Nodes))
	}
	for i, prefix := range []string{"제1조", "제2조", "제3조"} {
		if !strings.HasPrefix(doc.Nodes[i].Text(), prefix) {
			t.Errorf("node[%d]: expected to start with %q, got %q", i, prefix, doc.Nodes[i].Text())
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if len(doc.Nodes) != 0 {
		t.Errorf("expected 0 nodes for empty input, got %d", len(doc.Nodes))
	}
}

func TestTextParser_SingleLine(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader("제1조(목적) 이 법은"), "single.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(doc.Nodes))
	}
	if doc.Nodes[0].Text() != "제1조(목적) 이 법은" {
		t.Errorf("expected %q, got %q", "제1조(목적) 이 법은", doc.Nodes[0].Text())
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Multiple consecutive blank lines should not produce empty nodes.
	input := "Para one.\n\n\n\nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(doc.Nodes))
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace should be treated as blank.
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(doc.Nodes))
	}
}
