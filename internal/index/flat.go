// Package index provides exact inner-product nearest-neighbour search.
package index

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dgallion1/statgest/internal/embed"
)

// FlatIP stores vectors row by row and scores queries by inner product.
// With unit-length vectors the score is cosine similarity. Row numbers
// follow insertion order.
type FlatIP struct {
	mu   sync.RWMutex
	dim  int
	data []float32 // Row-major, len = rows * dim.
}

// New returns an empty index for vectors of width dim.
func New(dim int) (*FlatIP, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("index dimension must be positive, got %d", dim)
	}
	return &FlatIP{dim: dim}, nil
}

func (ix *FlatIP) Dimension() int { return ix.dim }

// Len returns the number of stored rows.
func (ix *FlatIP) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.data) / ix.dim
}

// Add appends vectors as new rows. Either all rows are added or none.
func (ix *FlatIP) Add(vectors [][]float32) error {
	if len(vectors) == 0 {
		return fmt.Errorf("add to index: %w", embed.ErrEmptyCorpus)
	}
	for i, v := range vectors {
		if len(v) != ix.dim {
			return fmt.Errorf("add row %d: %w: index %d, vector %d", i, embed.ErrDimensionMismatch, ix.dim, len(v))
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, v := range vectors {
		ix.data = append(ix.data, v...)
	}
	return nil
}

// Search returns, for each query, the k best rows as parallel score and row
// slices sorted by descending score. k is clamped to Len().
func (ix *FlatIP) Search(queries [][]float32, k int) ([][]float32, [][]int, error) {
	for i, q := range queries {
		if len(q) != ix.dim {
			return nil, nil, fmt.Errorf("query %d: %w: index %d, query %d", i, embed.ErrDimensionMismatch, ix.dim, len(q))
		}
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	rows := len(ix.data) / ix.dim
	if k > rows {
		k = rows
	}
	if k < 0 {
		k = 0
	}

	scores := make([][]float32, len(queries))
	indices := make([][]int, len(queries))
	for qi, q := range queries {
		scores[qi], indices[qi] = ix.topK(q, k, rows)
	}
	return scores, indices, nil
}

type hit struct {
	score float32
	row   int
}

// topK keeps the best k rows in descending order by insertion into a short
// sorted slice.
func (ix *FlatIP) topK(q []float32, k, rows int) ([]float32, []int) {
	best := make([]hit, 0, k)
	if k > 0 {
		for row := 0; row < rows; row++ {
			off := row * ix.dim
			s := dot(q, ix.data[off:off+ix.dim])
			if len(best) == k && s <= best[k-1].score {
				continue
			}
			pos := sort.Search(len(best), func(i int) bool { return best[i].score < s })
			if len(best) < k {
				best = append(best, hit{})
			}
			copy(best[pos+1:], best[pos:len(best)-1])
			best[pos] = hit{score: s, row: row}
		}
	}

	scores := make([]float32, len(best))
	idx := make([]int, len(best))
	for i, h := range best {
		scores[i] = h.score
		idx[i] = h.row
	}
	return scores, idx
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
