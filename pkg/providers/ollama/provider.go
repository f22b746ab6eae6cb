// Package ollama implements Ollama's local OpenAI-compatible endpoint
// atop providerutils/openaicompat, grounded on the teacher's
// pkg/providers/ollama/language_model.go, which already speaks the
// `/v1/chat/completions` OpenAI wire against a local server. No API key
// is required; BaseURL defaults to the local daemon.
package ollama

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
	ID = "ollama"

	DefaultBaseURL = "http://localhost:11434/v1"
	DefaultModel   = "llama2"

	chatPath = "/chat/completions"
)

func init() {
	registry.RegisterBuiltin(factory{})
}

// Provider is a configured handle to a local Ollama server.
type Provider struct {
	sink    transport.Sink
	cfg     types.Config
	modelID string
}

func (p *Provider) ID() string { return ID }

type factory struct{}

func (factory) ID() string          { return ID }
func (factory) DisplayName() string { return "Ollama" }
func (factory) Description() string {
	return "Locally-hosted open models served by Ollama's OpenAI-compatible endpoint."
}

func (factory) Capabilities() types.CapabilitySet {
	return types.CapabilitySet{
		types.CapChat:        true,
		types.CapStreaming:   true,
		types.CapToolCalling: true,
		types.CapEmbedding:   true,
	}
}

func (factory) DefaultConfig() types.Config {
	return types.Config{BaseURL: DefaultBaseURL, Model: DefaultModel}
}

// ValidateConfig requires only a model; Ollama has no API key.
func (factory) ValidateConfig(cfg types.Config) error {
	if cfg.Model == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "ollama: model is required")
	}
	return nil
}

func (f factory) Create(cfg types.Config) (registry.Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	modelID := cfg.Model
	if modelID == "" {
		modelID = DefaultModel
		cfg.Model = modelID
	}
	sink := transport.NewClient(transport.Config{
		BaseURL:     baseURL,
		Headers:     openaicompat.BuildHeaders(cfg),
		ErrorMapper: llmerrors.MapHTTPStatus,
	})
	return &Provider{sink: sink, cfg: cfg, modelID: modelID}, nil
}

// Chat performs one non-streaming completion.
func (p *Provider) Chat(ctx context.Context, messages []types.Message) (*types.GenerateResult, error) {
	return openaicompat.Chat(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, nil, nil)
}

// ChatStream performs one streaming completion.
func (p *Provider) ChatStream(ctx context.Context, messages []types.Message) (<-chan types.StreamEvent, error) {
	return openaicompat.ChatStream(ctx, p.sink, ID, chatPath, p.cfg, messages, openaicompat.ModelCaps{}, false, nil, nil)
}

// CountTokens falls back to the shared heuristic (spec.md §4.G.5); Ollama
// exposes no counting endpoint.
func (p *Provider) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	return heuristic.CountTokens(messages, p.cfg.Tools), nil
}
