package openai

import (
	"context"

	"github.com/quillhq/llmkit/pkg/capabilities/models"
	"github.com/quillhq/llmkit/pkg/capabilities/moderation"
)

// ListModels implements provider.ModelLister by delegating to the
// vendor-agnostic capabilities/models package, since OpenAI's /models
// endpoint is the wire shape that package is built against.
func (p *Provider) ListModels(ctx context.Context) ([]models.ModelInfo, error) {
	return models.List(ctx, p.sink)
}

func (p *Provider) GetModel(ctx context.Context, id string) (*models.ModelInfo, error) {
	return models.Get(ctx, p.sink, id)
}

// Moderate implements provider.Moderator by delegating to
// capabilities/moderation.
func (p *Provider) Moderate(ctx context.Context, inputs []string) ([]moderation.Result, error) {
	return moderation.Classify(ctx, p.sink, inputs)
}
