// Package phind implements Phind's OpenAI-compatible Chat Completions
// endpoint atop providerutils/openaicompat. Phind is not among the
// teacher's vendors; like groq, it is built the same way the teacher
// built its own OpenAI-compatible vendors, with no named transformer.
package phind

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
	ID = "phind"

	DefaultBaseURL = "https://api.phind.com/v1"

	chatPath = "/chat/completions"
)

func init() {
	registry.RegisterBuiltin(factory{})
}

// Provider is a configured handle to Phind's Chat Completions API.
type Provider struct {
	sink    transport.Sink
	cfg     types.Config
	modelID string
}

func (p *Provider) ID() string { return ID }

type factory struct{}

func (factory) ID() string          { return ID }
func (factory) DisplayName() string { return "Phind" }
func (factory) Description() string {
	return "Phind's developer-focused models via an OpenAI-compatible Chat Completions API."
}

func (factory) Capabilities() types.CapabilitySet {
	return types.CapabilitySet{
		types.CapChat:      true,
		types.CapStreaming: true,
	}
}

func (factory) DefaultConfig() types.Config {
	return types.Config{BaseURL: DefaultBaseURL}
}

func (factory) ValidateConfig(cfg types.Config) error {
	if cfg.APIKey == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "phind: apiKey is required")
	}
	if cfg.Model == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "phind: model is required")
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
	return openaicompat.Chat(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, nil, nil)
}

// ChatStream performs one streaming completion.
func (p *Provider) ChatStream(ctx context.Context, messages []types.Message) (<-chan types.StreamEvent, error) {
	return openaicompat.ChatStream(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, nil, nil)
}

// CountTokens falls back to the shared heuristic (spec.md §4.G.5).
func (p *Provider) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	return heuristic.CountTokens(messages, p.cfg.Tools), nil
}
