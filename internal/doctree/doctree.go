package doctree

import "strings"

// Document is a parsed source document: an ordered sequence of text-bearing nodes.
type Document struct {
	Title string // Document title (from metadata or filename)
	Nodes []Node // Text-bearing nodes in document order
}

// Node is a single text-bearing element of a document.
type Node struct {
	ID        string   // Stable identifier, empty if the source has none
	Fragments []string // Descendant text strings in document order
}

// IDOr returns the node identifier, or fallback when it has none.
func (n Node) IDOr(fallback string) string {
	if n.ID == "" {
		return fallback
	}
	return n.ID
}

// Text returns the stripped fragments concatenated without a separator.
func (n Node) Text() string {
	return n.JoinedText("")
}

// JoinedText returns the stripped, non-empty fragments joined with sep.
func (n Node) JoinedText(sep string) string {
	parts := make([]string, 0, len(n.Fragments))
	for _, f := range n.Fragments {
		f = strings.TrimSpace(f)
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, sep)
}

// ArticleChunk is one statute article: the contiguous run of nodes from its
// boundary node up to the next boundary node.
type ArticleChunk struct {
	ArticleID     string   `json:"article_id"`     // Leading label, e.g. "제5조의2" or "Article 5-2"
	StartID       string   `json:"start_id"`       // Identifier of the first node
	EndID         string   `json:"end_id"`         // Identifier of the last node
	Content       string   `json:"content"`        // Node texts joined with "\n"
	ParagraphIDs  []string `json:"paragraph_ids"`  // One identifier per node, parallel to Content lines
	RelationParts []string `json:"relation_parts"` // Outgoing references, self label excluded
}
