package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TEIEmbedder calls a sentence-transformers model served over the
// text-embeddings-inference HTTP protocol (POST /embed).
type TEIEmbedder struct {
	baseURL    string
	model      string
	dim        int
	httpClient *http.Client
}

func NewTEIEmbedder(baseURL, model string, dim int, timeout time.Duration) *TEIEmbedder {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &TEIEmbedder{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		dim:     dim,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type teiRequest struct {
	Inputs    []string `json:"inputs"`
	Normalize bool     `json:"normalize"`
	Truncate  bool     `json:"truncate"`
}

type teiError struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
}

func (c *TEIEmbedder) Name() string {
	if c.model != "" {
		return "tei:" + c.model
	}
	return "tei"
}

func (c *TEIEmbedder) Dimension() int { return c.dim }

// Embed sends one batch of texts and returns unit-length vectors.
func (c *TEIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(teiRequest{Inputs: texts, Normalize: true, Truncate: true})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("embedding api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr teiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("embedding api status %d: %s: %s", resp.StatusCode, apiErr.ErrorType, apiErr.Error)
		}
		return nil, fmt.Errorf("embedding api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var vectors [][]float32
	if err := json.Unmarshal(respBody, &vectors); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding api returned %d vectors for %d texts", len(vectors), len(texts))
	}
	for _, v := range vectors {
		Normalize(v)
	}

	return vectors, nil
}

// Close releases idle connections.
func (c *TEIEmbedder) Close() {
	c.httpClient.CloseIdleConnections()
}
