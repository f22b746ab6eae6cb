// Package anthropic implements the canonical chat translator: Anthropic's
// Messages API, grounded on the teacher's
// pkg/providers/anthropic/{provider.go,language_model.go} and generalized
// from the teacher's bespoke Config/Provider pair to registry.Factory and
// types.Config.
package anthropic

import (
	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/registry"
	"github.com/quillhq/llmkit/pkg/telemetry"
	"github.com/quillhq/llmkit/pkg/transport"
)

const (
	// ID is this provider's registry identifier.
	ID = "anthropic"

	DefaultBaseURL    = "https://api.anthropic.com"
	DefaultAPIVersion = "2023-06-01"

	// DefaultMaxTokens is the Anthropic Messages API's required field,
	// defaulted here rather than left to the vendor (spec.md §4.G.1/§8).
	DefaultMaxTokens = 1024
)

func init() {
	registry.RegisterBuiltin(factory{})
}

// Provider is a configured handle to the Anthropic Messages API.
type Provider struct {
	sink    transport.Sink
	cfg     types.Config
	tracer  *telemetry.Settings
	modelID string
}

func (p *Provider) ID() string { return ID }

type factory struct{}

func (factory) ID() string          { return ID }
func (factory) DisplayName() string { return "Anthropic" }
func (factory) Description() string {
	return "Anthropic's Messages API: Claude chat, streaming, tool use, and extended thinking."
}

func (factory) Capabilities() types.CapabilitySet {
	return types.CapabilitySet{
		types.CapChat:           true,
		types.CapStreaming:      true,
		types.CapToolCalling:    true,
		types.CapReasoning:      true,
		types.CapVision:         true,
		types.CapFileManagement: true,
	}
}

func (factory) DefaultConfig() types.Config {
	return types.Config{BaseURL: DefaultBaseURL}
}

func (factory) ValidateConfig(cfg types.Config) error {
	if cfg.APIKey == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "anthropic: apiKey is required")
	}
	if cfg.Model == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "anthropic: model is required")
	}
	return nil
}

func (f factory) Create(cfg types.Config) (registry.Provider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	headers := map[string]string{
		"x-api-key":         cfg.APIKey,
		"anthropic-version": DefaultAPIVersion,
	}
	sink := transport.NewClient(transport.Config{
		BaseURL:     baseURL,
		Headers:     headers,
		ErrorMapper: llmerrors.MapAnthropicError,
	})
	return &Provider{sink: sink, cfg: cfg, tracer: cfg.Telemetry, modelID: cfg.Model}, nil
}
