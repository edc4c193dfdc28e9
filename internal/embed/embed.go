// Package embed turns article texts into fixed-length vectors.
package embed

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyCorpus is returned when there is nothing to embed or index.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrDimensionMismatch is returned when a vector has the wrong width.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Embedder produces one vector per input text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension is the vector width, or 0 if only known after the first call.
	Dimension() int

	Name() string
}

// QueryEmbedder is implemented by backends that embed search queries
// differently from indexed documents.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, texts []string) ([][]float32, error)
}

// RetryableError indicates a transient backend failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

// Normalize scales vec to unit length in place and returns it. Vectors with
// near-zero magnitude are zeroed.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	mag := math.Sqrt(sum)
	if mag < 1e-10 {
		for i := range vec {
			vec[i] = 0
		}
		return vec
	}
	inv := float32(1 / mag)
	for i := range vec {
		vec[i] *= inv
	}
	return vec
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
