package chunker

import (
	"strings"

	"github.com/dgallion1/statgest/internal/doctree"
)

// UnknownID stands in for nodes that carry no identifier.
const UnknownID = "unknown"

// Segment groups nodes into per-article chunks. A node whose stripped text
// opens with an article label starts a new chunk; every following node up to
// the next such node belongs to it. Nodes before the first label are dropped.
func Segment(nodes []doctree.Node, conv Convention) []doctree.ArticleChunk {
	var chunks []doctree.ArticleChunk
	var current *article

	for _, node := range nodes {
		if label, ok := conv.ArticleLabel(node.Text()); ok {
			if current != nil {
				chunks = append(chunks, current.chunk())
			}
			current = &article{label: label}
		}
		if current == nil {
			continue
		}
		current.add(node, conv)
	}
	if current != nil {
		chunks = append(chunks, current.chunk())
	}

	return chunks
}

// article accumulates the nodes of the chunk being scanned.
type article struct {
	label string
	parts []string
	ids   []string
	refs  []string
}

func (a *article) add(node doctree.Node, conv Convention) {
	content := strings.ReplaceAll(node.JoinedText(" "), "<br />", "")
	a.parts = append(a.parts, content)
	a.ids = append(a.ids, node.IDOr(UnknownID))
	a.refs = append(a.refs, conv.ExtractReferences(Normalize(content))...)
}

func (a *article) chunk() doctree.ArticleChunk {
	ids := make([]string, len(a.ids))
	copy(ids, a.ids)

	// The first match is the article's own label.
	relations := []string{}
	if len(a.refs) > 1 {
		relations = append(relations, a.refs[1:]...)
	}

	return doctree.ArticleChunk{
		ArticleID:     a.label,
		StartID:       ids[0],
		EndID:         ids[len(ids)-1],
		Content:       strings.Join(a.parts, "\n"),
		ParagraphIDs:  ids,
		RelationParts: relations,
	}
}
