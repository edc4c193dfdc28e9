package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dgallion1/statgest/internal/doctree"
	"github.com/dgallion1/statgest/internal/embed"
	"github.com/dgallion1/statgest/internal/index"
)

type SearchOptions struct {
	BatchSize   int
	Parallelism int

	// CacheSize bounds the query embedding cache. 0 disables it.
	CacheSize int

	Stats *embed.Stats
	Log   *slog.Logger
}

// Hit is one search result.
type Hit struct {
	Rank  int                  `json:"rank"`
	Score float32              `json:"score"`
	Chunk doctree.ArticleChunk `json:"chunk"`
}

// Searcher answers similarity queries over a corpus. It is safe for
// concurrent use once constructed.
type Searcher struct {
	chunks   []doctree.ArticleChunk
	index    *index.FlatIP
	embedder embed.Embedder
	cache    *lru.Cache[string, []float32]
	opts     SearchOptions
	log      *slog.Logger
}

// NewSearcher embeds every chunk of corpus and indexes the vectors in
// corpus order. An empty corpus fails with embed.ErrEmptyCorpus.
func NewSearcher(ctx context.Context, corpus *Corpus, e embed.Embedder, opts SearchOptions) (*Searcher, error) {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if corpus == nil || len(corpus.Chunks) == 0 {
		return nil, fmt.Errorf("build index: %w", embed.ErrEmptyCorpus)
	}
	log = log.With("corpus_id", corpus.ID, "embedder", e.Name())

	vecs, err := EmbedBatches(ctx, e, corpus.Texts(), BatchOptions{
		BatchSize:   opts.BatchSize,
		Parallelism: opts.Parallelism,
		Stats:       opts.Stats,
		Log:         log,
	})
	if err != nil {
		return nil, fmt.Errorf("embed corpus: %w", err)
	}

	ix, err := index.New(len(vecs[0]))
	if err != nil {
		return nil, err
	}
	if err := ix.Add(vecs); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	s := &Searcher{
		chunks:   corpus.Chunks,
		index:    ix,
		embedder: e,
		opts:     opts,
		log:      log,
	}
	if opts.CacheSize > 0 {
		s.cache, err = lru.New[string, []float32](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("query cache: %w", err)
		}
	}
	log.Info("index built", "rows", ix.Len(), "dimension", ix.Dimension())
	return s, nil
}

// Len returns the number of indexed articles.
func (s *Searcher) Len() int { return s.index.Len() }

// Search returns up to k articles ranked by similarity to query.
func (s *Searcher) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	qvec, err := s.queryVector(ctx, query)
	if err != nil {
		return nil, err
	}
	scores, rows, err := s.index.Search([][]float32{qvec}, k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, len(rows[0]))
	for i, row := range rows[0] {
		hits[i] = Hit{Rank: i + 1, Score: scores[0][i], Chunk: s.chunks[row]}
	}
	s.log.Debug("search", "query", query, "k", k, "hits", len(hits))
	return hits, nil
}

func (s *Searcher) queryVector(ctx context.Context, query string) ([]float32, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(query); ok {
			return v, nil
		}
	}
	vecs, err := EmbedBatches(ctx, s.embedder, []string{query}, BatchOptions{
		BatchSize:   1,
		Parallelism: 1,
		Query:       true,
		Stats:       s.opts.Stats,
		Log:         s.log,
	})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if s.cache != nil {
		s.cache.Add(query, vecs[0])
	}
	return vecs[0], nil
}
