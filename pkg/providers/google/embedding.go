package google

import (
	"context"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/providerutils/openaicompat"
)

// DefaultEmbeddingModel is Gemini's text embedding model, reachable
// through the same OpenAI-compatible /embeddings endpoint as chat.
const DefaultEmbeddingModel = "text-embedding-004"

func (p *Provider) Embed(ctx context.Context, input string) (*types.EmbeddingResult, error) {
	return openaicompat.Embed(ctx, p.sink, p.embeddingModelID(), input)
}

func (p *Provider) EmbedMany(ctx context.Context, inputs []string) (*types.EmbeddingsResult, error) {
	return openaicompat.EmbedMany(ctx, p.sink, p.embeddingModelID(), inputs)
}

func (p *Provider) embeddingModelID() string {
	if p.modelID != "" {
		return p.modelID
	}
	return DefaultEmbeddingModel
}
