// Package xai implements xAI's OpenAI-compatible Chat Completions endpoint
// atop providerutils/openaicompat, grounded on the teacher's
// pkg/providers/xai/language_model.go, with SearchTransformer adding
// xAI's native Live Search parameters (spec.md §4.H).
package xai

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
	ID = "xai"

	DefaultBaseURL = "https://api.x.ai/v1"

	chatPath = "/chat/completions"
)

func init() {
	registry.RegisterBuiltin(factory{})
}

// Provider is a configured handle to xAI's Chat Completions API.
type Provider struct {
	sink    transport.Sink
	cfg     types.Config
	modelID string
}

func (p *Provider) ID() string { return ID }

type factory struct{}

func (factory) ID() string          { return ID }
func (factory) DisplayName() string { return "xAI" }
func (factory) Description() string {
	return "xAI's Grok models via the OpenAI-compatible Chat Completions API, with native Live Search."
}

func (factory) Capabilities() types.CapabilitySet {
	return types.CapabilitySet{
		types.CapChat:        true,
		types.CapStreaming:   true,
		types.CapToolCalling: true,
		types.CapReasoning:   true,
		types.CapVision:      true,
		types.CapLiveSearch:  true,
	}
}

func (factory) DefaultConfig() types.Config {
	return types.Config{BaseURL: DefaultBaseURL}
}

func (factory) ValidateConfig(cfg types.Config) error {
	if cfg.APIKey == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "xai: apiKey is required")
	}
	if cfg.Model == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "xai: model is required")
	}
	return nil
}

func (f factory) Create(cfg types.Config) (registry.Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	sink := transport.NewClient(transport.Config{
		BaseURL:     baseURL,
		Headers:     openaicompat.BuildHeaders(cfg),
		ErrorMapper: llmerrors.MapHTTPStatus,
	})
	return &Provider{sink: sink, cfg: cfg, modelID: cfg.Model}, nil
}

// Chat performs one non-streaming completion.
func (p *Provider) Chat(ctx context.Context, messages []types.Message) (*types.GenerateResult, error) {
	return openaicompat.Chat(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, SearchTransformer, nil)
}

// ChatStream performs one streaming completion.
func (p *Provider) ChatStream(ctx context.Context, messages []types.Message) (<-chan types.StreamEvent, error) {
	return openaicompat.ChatStream(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, SearchTransformer, nil)
}

// CountTokens falls back to the shared heuristic (spec.md §4.G.5).
func (p *Provider) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	return heuristic.CountTokens(messages, p.cfg.Tools), nil
}
