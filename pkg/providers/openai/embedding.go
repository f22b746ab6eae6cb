package openai

import (
	"context"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/providerutils/openaicompat"
)

// DefaultEmbeddingModel is used when cfg.Model names a chat model; callers
// embedding frequently should configure a dedicated embedding Provider.
const DefaultEmbeddingModel = "text-embedding-3-small"

// Embed implements provider.EmbeddingModel, grounded on the teacher's
// providers/openai/embedding_model.go DoEmbed.
func (p *Provider) Embed(ctx context.Context, input string) (*types.EmbeddingResult, error) {
	return openaicompat.Embed(ctx, p.sink, p.embeddingModelID(), input)
}

// EmbedMany implements provider.EmbeddingModel, grounded on DoEmbedMany.
func (p *Provider) EmbedMany(ctx context.Context, inputs []string) (*types.EmbeddingsResult, error) {
	return openaicompat.EmbedMany(ctx, p.sink, p.embeddingModelID(), inputs)
}

func (p *Provider) embeddingModelID() string {
	if p.modelID != "" {
		return p.modelID
	}
	return DefaultEmbeddingModel
}
