package provider

import (
	"context"

	"github.com/quillhq/llmkit/pkg/capabilities/models"
	"github.com/quillhq/llmkit/pkg/capabilities/moderation"
	"github.com/quillhq/llmkit/pkg/registry"
)

// ModelLister is the capability surface a provider advertising
// CapModelListing implements (spec.md §4.I).
type ModelLister interface {
	registry.Provider

	ListModels(ctx context.Context) ([]models.ModelInfo, error)
	GetModel(ctx context.Context, id string) (*models.ModelInfo, error)
}

// Moderator is the capability surface a provider advertising
// CapModeration implements (spec.md §4.I).
type Moderator interface {
	registry.Provider

	Moderate(ctx context.Context, inputs []string) ([]moderation.Result, error)
}
