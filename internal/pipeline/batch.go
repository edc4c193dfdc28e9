package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/statgest/internal/embed"
)

// BatchOptions controls how EmbedBatches splits and schedules work.
type BatchOptions struct {
	BatchSize   int
	Parallelism int

	// Query selects EmbedQuery on backends that implement embed.QueryEmbedder.
	Query bool

	Stats *embed.Stats
	Log   *slog.Logger

	// wait overrides Backoff in tests.
	wait func(int) time.Duration
}

// EmbedBatches embeds texts in batches of opts.BatchSize, running at most
// opts.Parallelism batches at once. The result is aligned with texts, and
// every vector is unit length and of one width.
func EmbedBatches(ctx context.Context, e embed.Embedder, texts []string, opts BatchOptions) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, embed.ErrEmptyCorpus
	}
	size := opts.BatchSize
	if size <= 0 {
		size = len(texts)
	}
	par := opts.Parallelism
	if par <= 0 {
		par = 1
	}
	wait := opts.wait
	if wait == nil {
		wait = Backoff
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	call := e.Embed
	if qe, ok := e.(embed.QueryEmbedder); ok && opts.Query {
		call = qe.EmbedQuery
	}

	out := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(par)

	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))
		batch := texts[start:end]
		g.Go(func() error {
			vecs, err := withRetry(gctx, wait, func(attempt int, err error) {
				log.Warn("retryable embedding error", "batch_start", start, "attempt", attempt, "error", err)
			}, func() ([][]float32, error) {
				t0 := time.Now()
				v, err := call(gctx, batch)
				if opts.Stats != nil {
					opts.Stats.Observe(time.Since(t0), len(batch), err)
				}
				return v, err
			})
			if err != nil {
				return fmt.Errorf("embed batch %d-%d: %w", start, end, err)
			}
			if len(vecs) != len(batch) {
				return fmt.Errorf("embed batch %d-%d: got %d vectors for %d texts", start, end, len(vecs), len(batch))
			}
			copy(out[start:end], vecs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dim := e.Dimension()
	if dim == 0 {
		dim = len(out[0])
	}
	for i, v := range out {
		if len(v) != dim || dim == 0 {
			return nil, fmt.Errorf("vector %d: %w: expected %d, got %d", i, embed.ErrDimensionMismatch, dim, len(v))
		}
		embed.Normalize(v)
	}
	return out, nil
}
