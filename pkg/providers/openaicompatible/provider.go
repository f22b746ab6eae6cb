// Package openaicompatible registers a generic factory for any vendor
// exposing a plain OpenAI-compatible Chat Completions endpoint (spec.md
// §1's "other OpenAI-compatible endpoints") that isn't one of the named
// vendor packages. It registers zero transformers, making it the
// conservative-generalization baseline the spec §8 property test compares
// named vendors against.
package openaicompatible

import (
	"context"

	"github.com/quillhq/llmkit/pkg/internal/heuristic"
	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/providerutils/openaicompat"
	"github.com/quillhq/llmkit/pkg/registry"
	"github.com/quillhq/llmkit/pkg/transport"
)

const (
	ID = "openai-compatible"

	chatPath = "/chat/completions"
)

func init() {
	registry.RegisterBuiltin(factory{})
}

// Provider is a configured handle to an arbitrary OpenAI-compatible
// endpoint, identified only by its BaseURL.
type Provider struct {
	sink transport.Sink
	cfg  types.Config
}

func (p *Provider) ID() string { return ID }

type factory struct{}

func (factory) ID() string          { return ID }
func (factory) DisplayName() string { return "OpenAI-compatible" }
func (factory) Description() string {
	return "Any self-hosted or third-party endpoint implementing the OpenAI Chat Completions wire format."
}

func (factory) Capabilities() types.CapabilitySet {
	return types.CapabilitySet{
		types.CapChat:        true,
		types.CapStreaming:   true,
		types.CapToolCalling: true,
	}
}

func (factory) DefaultConfig() types.Config {
	return types.Config{}
}

func (factory) ValidateConfig(cfg types.Config) error {
	if cfg.BaseURL == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "openai-compatible: baseUrl is required")
	}
	if cfg.Model == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "openai-compatible: model is required")
	}
	return nil
}

func (f factory) Create(cfg types.Config) (registry.Provider, error) {
	if cfg.BaseURL == "" {
		return nil, llmerrors.New(llmerrors.KindInvalidRequest, "openai-compatible: baseUrl is required")
	}
	sink := transport.NewClient(transport.Config{
		BaseURL:     cfg.BaseURL,
		Headers:     openaicompat.BuildHeaders(cfg),
		ErrorMapper: llmerrors.MapHTTPStatus,
	})
	return &Provider{sink: sink, cfg: cfg}, nil
}

// Chat performs one non-streaming completion with zero transformers — its
// output is byte-identical to calling openaicompat.BuildBody directly
// (spec §8's conservative-generalization property).
func (p *Provider) Chat(ctx context.Context, messages []types.Message) (*types.GenerateResult, error) {
	return openaicompat.Chat(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, nil, nil)
}

// ChatStream performs one streaming completion with zero transformers.
func (p *Provider) ChatStream(ctx context.Context, messages []types.Message) (<-chan types.StreamEvent, error) {
	return openaicompat.ChatStream(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, nil, nil)
}

// CountTokens falls back to the shared heuristic (spec.md §4.G.5).
func (p *Provider) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	return heuristic.CountTokens(messages, p.cfg.Tools), nil
}
