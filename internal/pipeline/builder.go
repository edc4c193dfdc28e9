// Package pipeline composes parsing, segmentation, embedding and search.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dgallion1/statgest/internal/chunker"
	"github.com/dgallion1/statgest/internal/doctree"
	"github.com/dgallion1/statgest/internal/parser"
)

// Corpus is the ordered list of articles built from one statute document.
type Corpus struct {
	ID     string                  `json:"id"`
	Title  string                  `json:"title"`
	Source string                  `json:"source"`
	Chunks []doctree.ArticleChunk `json:"chunks"`
}

// Texts returns the article contents in corpus order.
func (c *Corpus) Texts() []string {
	texts := make([]string, len(c.Chunks))
	for i, ch := range c.Chunks {
		texts[i] = ch.Content
	}
	return texts
}

// Builder turns statute files into corpora.
type Builder struct {
	conv    chunker.Convention
	parsing parser.Options
	log     *slog.Logger
}

func NewBuilder(conv chunker.Convention, parsing parser.Options, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Builder{conv: conv, parsing: parsing, log: log}
}

// Load reads and parses the file at path using the parser for its extension.
func (b *Builder) Load(path string) (*doctree.Document, error) {
	p, err := parser.ForFile(path, b.parsing)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := p.Parse(bytes.NewReader(data), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Build loads the document at path and segments it into articles.
func (b *Builder) Build(ctx context.Context, path string) (*Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := b.Load(path)
	if err != nil {
		return nil, err
	}
	corpus := b.BuildFromDocument(doc)
	corpus.Source = path
	return corpus, nil
}

// BuildFromDocument segments an already loaded document.
func (b *Builder) BuildFromDocument(doc *doctree.Document) *Corpus {
	corpus := &Corpus{
		ID:     uuid.NewString(),
		Title:  doc.Title,
		Chunks: chunker.Segment(doc.Nodes, b.conv),
	}

	log := b.log.With("corpus_id", corpus.ID, "convention", b.conv.Name)
	for i, ch := range corpus.Chunks {
		log.Debug("article",
			"index", i,
			"article_id", ch.ArticleID,
			"start_id", ch.StartID,
			"end_id", ch.EndID,
			"paragraph_ids", ch.ParagraphIDs,
		)
	}
	if len(corpus.Chunks) == 0 {
		log.Warn("no article boundaries found", "nodes", len(doc.Nodes))
	} else {
		log.Info("segmented document", "title", doc.Title, "nodes", len(doc.Nodes), "chunks", len(corpus.Chunks))
	}
	return corpus
}
