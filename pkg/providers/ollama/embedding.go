package ollama

import (
	"context"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/providerutils/openaicompat"
)

func (p *Provider) Embed(ctx context.Context, input string) (*types.EmbeddingResult, error) {
	return openaicompat.Embed(ctx, p.sink, p.modelID, input)
}

func (p *Provider) EmbedMany(ctx context.Context, inputs []string) (*types.EmbeddingsResult, error) {
	return openaicompat.EmbedMany(ctx, p.sink, p.modelID, inputs)
}
