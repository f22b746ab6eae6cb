package provider

import (
	"context"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/registry"
)

// EmbeddingModel is the capability surface a provider advertising
// CapEmbedding implements (spec.md §4.F).
type EmbeddingModel interface {
	registry.Provider

	// Embed embeds a single input string.
	Embed(ctx context.Context, input string) (*types.EmbeddingResult, error)

	// EmbedMany embeds a batch of inputs in one call, preserving order.
	EmbedMany(ctx context.Context, inputs []string) (*types.EmbeddingsResult, error)
}
