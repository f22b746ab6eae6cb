// Package google implements Gemini's OpenAI-compatible endpoint
// (/v1beta/openai/) atop providerutils/openaicompat, grounded on the
// teacher's pkg/providers/google/provider.go (native Gemini wire) but
// redirected to the OpenAI-wire surface per spec.md §6.5/§8 scenario 4.
package google

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
	ID = "google"

	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

	chatPath = "/chat/completions"
)

func init() {
	registry.RegisterBuiltin(factory{})
}

// Provider is a configured handle to Gemini's OpenAI-compatible endpoint.
type Provider struct {
	sink    transport.Sink
	cfg     types.Config
	modelID string
}

func (p *Provider) ID() string { return ID }

type factory struct{}

func (factory) ID() string          { return ID }
func (factory) DisplayName() string { return "Google" }
func (factory) Description() string {
	return "Google Gemini via its OpenAI-compatible endpoint: chat, streaming, tool use, and extended thinking."
}

func (factory) Capabilities() types.CapabilitySet {
	return types.CapabilitySet{
		types.CapChat:        true,
		types.CapStreaming:   true,
		types.CapToolCalling: true,
		types.CapReasoning:   true,
		types.CapVision:      true,
		types.CapEmbedding:   true,
	}
}

func (factory) DefaultConfig() types.Config {
	return types.Config{BaseURL: DefaultBaseURL}
}

func (factory) ValidateConfig(cfg types.Config) error {
	if cfg.APIKey == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "google: apiKey is required")
	}
	if cfg.Model == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "google: model is required")
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
	return openaicompat.Chat(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, ThinkingTransformer, IncludeThoughtsHeaderTransformer)
}

// ChatStream performs one streaming completion.
func (p *Provider) ChatStream(ctx context.Context, messages []types.Message) (<-chan types.StreamEvent, error) {
	return openaicompat.ChatStream(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, ThinkingTransformer, IncludeThoughtsHeaderTransformer)
}

// CountTokens falls back to the shared heuristic (spec.md §4.G.5).
func (p *Provider) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	return heuristic.CountTokens(messages, p.cfg.Tools), nil
}
