// Package openai implements OpenAI's Chat Completions API directly atop
// providerutils/openaicompat with zero transformers registered, grounded
// on the teacher's pkg/providers/openai/{provider.go,language_model.go}.
package openai

import (
	"context"

	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/providerutils/openaicompat"
	"github.com/quillhq/llmkit/pkg/registry"
	"github.com/quillhq/llmkit/pkg/transport"
)

const (
	ID = "openai"

	DefaultBaseURL = "https://api.openai.com/v1"

	chatPath = "/chat/completions"
)

func init() {
	registry.RegisterBuiltin(factory{})
}

// Provider is a configured handle to OpenAI's Chat Completions API.
type Provider struct {
	sink    transport.Sink
	cfg     types.Config
	modelID string
}

func (p *Provider) ID() string { return ID }

type factory struct{}

func (factory) ID() string          { return ID }
func (factory) DisplayName() string { return "OpenAI" }
func (factory) Description() string {
	return "OpenAI's Chat Completions API: GPT chat, streaming, tool use, vision, and reasoning models."
}

func (factory) Capabilities() types.CapabilitySet {
	return types.CapabilitySet{
		types.CapChat:            true,
		types.CapStreaming:       true,
		types.CapToolCalling:     true,
		types.CapReasoning:       true,
		types.CapVision:          true,
		types.CapEmbedding:       true,
		types.CapImageGeneration: true,
		types.CapSpeechToText:    true,
		types.CapTextToSpeech:    true,
		types.CapModelListing:    true,
		types.CapModeration:      true,
	}
}

func (factory) DefaultConfig() types.Config {
	return types.Config{BaseURL: DefaultBaseURL}
}

func (factory) ValidateConfig(cfg types.Config) error {
	if cfg.APIKey == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "openai: apiKey is required")
	}
	if cfg.Model == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "openai: model is required")
	}
	return nil
}

func (f factory) Create(cfg types.Config) (registry.Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	headers := openaicompat.BuildHeaders(cfg)
	if org, ok, _ := types.GetExtension[string](cfg, "organization"); ok && org != "" {
		headers["OpenAI-Organization"] = org
	}
	if project, ok, _ := types.GetExtension[string](cfg, "project"); ok && project != "" {
		headers["OpenAI-Project"] = project
	}
	sink := transport.NewClient(transport.Config{
		BaseURL:     baseURL,
		Headers:     headers,
		ErrorMapper: llmerrors.MapHTTPStatus,
	})
	return &Provider{sink: sink, cfg: cfg, modelID: cfg.Model}, nil
}

func (p *Provider) caps() (openaicompat.ModelCaps, bool) {
	return modelCapabilities.Lookup(p.modelID)
}

// Chat performs one non-streaming completion.
func (p *Provider) Chat(ctx context.Context, messages []types.Message) (*types.GenerateResult, error) {
	caps, ok := p.caps()
	return openaicompat.Chat(ctx, p.sink, ID, chatPath, p.cfg, messages, caps, ok, nil, nil)
}

// ChatStream performs one streaming completion.
func (p *Provider) ChatStream(ctx context.Context, messages []types.Message) (<-chan types.StreamEvent, error) {
	caps, ok := p.caps()
	return openaicompat.ChatStream(ctx, p.sink, ID, chatPath, p.cfg, messages, caps, ok, nil, nil)
}
