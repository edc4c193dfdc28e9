package embed

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

// DefaultHashDimension is the vector width of HashEmbedder when none is given.
const DefaultHashDimension = 256

// HashEmbedder is a local, deterministic embedder built on feature hashing of
// word tokens and character bigrams. It needs no model or network.
type HashEmbedder struct {
	dim int
}

func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = DefaultHashDimension
	}
	return &HashEmbedder{dim: dim}
}

func (h *HashEmbedder) Name() string   { return "hash" }
func (h *HashEmbedder) Dimension() int { return h.dim }

func (h *HashEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = h.vector(text)
	}
	return out, nil
}

func (h *HashEmbedder) vector(text string) []float32 {
	vec := make([]float32, h.dim)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, w := range words {
		h.add(vec, "w:"+w, 1)
		runes := []rune(w)
		for i := 0; i+1 < len(runes); i++ {
			h.add(vec, "b:"+string(runes[i:i+2]), 0.5)
		}
	}
	return Normalize(vec)
}

// add hashes a feature into one bucket; one hash bit picks the sign so that
// collisions tend to cancel.
func (h *HashEmbedder) add(vec []float32, feature string, weight float32) {
	f := fnv.New32a()
	f.Write([]byte(feature))
	sum := f.Sum32()
	idx := int(sum % uint32(h.dim))
	if sum&(1<<31) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}
