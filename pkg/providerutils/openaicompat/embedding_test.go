package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillhq/llmkit/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedReturnsFirstVector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data":  []map[string]any{{"index": 0, "embedding": []float64{0.1, 0.2}}},
			"usage": map[string]any{"prompt_tokens": 3, "total_tokens": 3},
		})
	}))
	defer srv.Close()
	sink := transport.NewClient(transport.Config{BaseURL: srv.URL})

	result, err := Embed(context.Background(), sink, "text-embedding-3-small", "hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2}, result.Embedding)
	assert.Equal(t, 3, result.Usage.TotalTokens)
}

func TestEmbedManyPreservesOrderByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float64{2}},
				{"index": 0, "embedding": []float64{1}},
			},
			"usage": map[string]any{"prompt_tokens": 2, "total_tokens": 2},
		})
	}))
	defer srv.Close()
	sink := transport.NewClient(transport.Config{BaseURL: srv.URL})

	result, err := EmbedMany(context.Background(), sink, "text-embedding-3-small", []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, result.Embeddings, 2)
	assert.Equal(t, []float64{1}, result.Embeddings[0])
	assert.Equal(t, []float64{2}, result.Embeddings[1])
}

func TestEmbedManyEmptyInputShortCircuits(t *testing.T) {
	result, err := EmbedMany(context.Background(), nil, "model", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Embeddings)
}
