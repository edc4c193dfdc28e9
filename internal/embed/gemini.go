package embed

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const (
	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// GeminiEmbedder embeds texts with a Gemini embedding model.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
	dim    int
}

func NewGeminiEmbedder(ctx context.Context, apiKey, model string, dim int) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiEmbedder{client: client, model: model, dim: dim}, nil
}

func (g *GeminiEmbedder) Name() string   { return "gemini:" + g.model }
func (g *GeminiEmbedder) Dimension() int { return g.dim }

// Embed embeds article texts for indexing.
func (g *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return g.embed(ctx, texts, taskRetrievalDocument)
}

// EmbedQuery embeds search queries.
func (g *GeminiEmbedder) EmbedQuery(ctx context.Context, texts []string) ([][]float32, error) {
	return g.embed(ctx, texts, taskRetrievalQuery)
}

func (g *GeminiEmbedder) embed(ctx context.Context, texts []string, task string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}

	cfg := &genai.EmbedContentConfig{TaskType: task}
	if g.dim > 0 {
		outputDim := int32(g.dim)
		cfg.OutputDimensionality = &outputDim
	}

	result, err := g.client.Models.EmbedContent(ctx, g.model, contents, cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && (apiErr.Code == 429 || apiErr.Code >= 500) {
			return nil, &RetryableError{StatusCode: apiErr.Code, Message: apiErr.Message}
		}
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		got := 0
		if result != nil {
			got = len(result.Embeddings)
		}
		return nil, fmt.Errorf("gemini returned %d embeddings for %d texts", got, len(texts))
	}

	out := make([][]float32, len(result.Embeddings))
	for i, e := range result.Embeddings {
		if e == nil {
			return nil, fmt.Errorf("gemini returned no embedding for text %d", i)
		}
		// Truncated output dimensions are not unit length.
		out[i] = Normalize(e.Values)
	}
	return out, nil
}
