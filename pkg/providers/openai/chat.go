package openai

import (
	"context"

	"github.com/quillhq/llmkit/pkg/internal/heuristic"
	"github.com/quillhq/llmkit/pkg/provider/types"
)

// CountTokens falls back to the shared heuristic; OpenAI exposes no
// dedicated counting endpoint (spec.md §4.G.5).
func (p *Provider) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	return heuristic.CountTokens(messages, p.cfg.Tools), nil
}
