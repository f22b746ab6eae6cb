package openaicompat

import (
	"context"

	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/transport"
)

const embeddingsPath = "/embeddings"

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

// Embed embeds a single input against an OpenAI-shaped /embeddings
// endpoint, shared by every vendor whose embeddings wire format matches
// OpenAI's (openai itself, google's OpenAI-compatible endpoint, ollama).
func Embed(ctx context.Context, sink transport.Sink, modelID, input string) (*types.EmbeddingResult, error) {
	var resp embeddingResponse
	body := map[string]any{"model": modelID, "input": input}
	if err := sink.PostJSON(ctx, embeddingsPath, nil, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, llmerrors.New(llmerrors.KindResponseFormat, "no embedding data in response")
	}
	return &types.EmbeddingResult{
		Embedding: resp.Data[0].Embedding,
		Usage: types.EmbeddingUsage{
			InputTokens: resp.Usage.PromptTokens,
			TotalTokens: resp.Usage.TotalTokens,
		},
	}, nil
}

// EmbedMany embeds a batch of inputs in one call, preserving order.
func EmbedMany(ctx context.Context, sink transport.Sink, modelID string, inputs []string) (*types.EmbeddingsResult, error) {
	if len(inputs) == 0 {
		return &types.EmbeddingsResult{Embeddings: [][]float64{}}, nil
	}
	var resp embeddingResponse
	body := map[string]any{"model": modelID, "input": inputs}
	if err := sink.PostJSON(ctx, embeddingsPath, nil, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) != len(inputs) {
		return nil, llmerrors.New(llmerrors.KindResponseFormat, "embedding count mismatch")
	}
	embeddings := make([][]float64, len(inputs))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(embeddings) {
			return nil, llmerrors.New(llmerrors.KindResponseFormat, "embedding index out of range")
		}
		embeddings[d.Index] = d.Embedding
	}
	return &types.EmbeddingsResult{
		Embeddings: embeddings,
		Usage: types.EmbeddingUsage{
			InputTokens: resp.Usage.PromptTokens,
			TotalTokens: resp.Usage.TotalTokens,
		},
	}, nil
}
