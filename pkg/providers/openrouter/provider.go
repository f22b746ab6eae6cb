// Package openrouter implements OpenRouter's OpenAI-compatible Chat
// Completions endpoint atop providerutils/openaicompat, grounded on the
// teacher's pkg/providers/openrouter package, with OnlineTransformer
// adding OpenRouter's plugin-based web search (spec.md §4.H).
package openrouter

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
	ID = "openrouter"

	DefaultBaseURL = "https://openrouter.ai/api/v1"

	chatPath = "/chat/completions"
)

func init() {
	registry.RegisterBuiltin(factory{})
}

// Provider is a configured handle to OpenRouter's Chat Completions API.
type Provider struct {
	sink    transport.Sink
	cfg     types.Config
	modelID string
}

func (p *Provider) ID() string { return ID }

type factory struct{}

func (factory) ID() string          { return ID }
func (factory) DisplayName() string { return "OpenRouter" }
func (factory) Description() string {
	return "OpenRouter's multi-vendor routing layer via the OpenAI-compatible Chat Completions API, with plugin-based web search."
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
		return llmerrors.New(llmerrors.KindInvalidRequest, "openrouter: apiKey is required")
	}
	if cfg.Model == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "openrouter: model is required")
	}
	return nil
}

func (f factory) Create(cfg types.Config) (registry.Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	headers := openaicompat.BuildHeaders(cfg)
	if referer, ok, _ := types.GetExtension[string](cfg, "httpReferer"); ok && referer != "" {
		headers["HTTP-Referer"] = referer
	}
	if title, ok, _ := types.GetExtension[string](cfg, "appTitle"); ok && title != "" {
		headers["X-Title"] = title
	}
	sink := transport.NewClient(transport.Config{
		BaseURL:     baseURL,
		Headers:     headers,
		ErrorMapper: llmerrors.MapHTTPStatus,
	})
	return &Provider{sink: sink, cfg: cfg, modelID: cfg.Model}, nil
}

// Chat performs one non-streaming completion.
func (p *Provider) Chat(ctx context.Context, messages []types.Message) (*types.GenerateResult, error) {
	return openaicompat.Chat(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, OnlineTransformer, nil)
}

// ChatStream performs one streaming completion.
func (p *Provider) ChatStream(ctx context.Context, messages []types.Message) (<-chan types.StreamEvent, error) {
	return openaicompat.ChatStream(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, OnlineTransformer, nil)
}

// CountTokens falls back to the shared heuristic (spec.md §4.G.5).
func (p *Provider) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	return heuristic.CountTokens(messages, p.cfg.Tools), nil
}
