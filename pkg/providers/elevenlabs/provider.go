// Package elevenlabs implements ElevenLabs' text-to-speech API, grounded
// on the teacher's pkg/providers/elevenlabs/{provider,speech_model}.go —
// the pack's only TTS reference.
package elevenlabs

import (
	"context"
	"fmt"

	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/registry"
	"github.com/quillhq/llmkit/pkg/transport"
)

const (
	ID = "elevenlabs"

	DefaultBaseURL = "https://api.elevenlabs.io"
	DefaultModel   = "eleven_multilingual_v2"
	DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM" // Rachel

	speechPath = "/v1/text-to-speech/%s"
)

func init() {
	registry.RegisterBuiltin(factory{})
}

// Provider is a configured handle to ElevenLabs' TTS API.
type Provider struct {
	sink    transport.Sink
	modelID string
}

func (p *Provider) ID() string { return ID }

type factory struct{}

func (factory) ID() string          { return ID }
func (factory) DisplayName() string { return "ElevenLabs" }
func (factory) Description() string {
	return "ElevenLabs' text-to-speech API: natural-sounding voices with tunable stability."
}

func (factory) Capabilities() types.CapabilitySet {
	return types.CapabilitySet{
		types.CapTextToSpeech: true,
	}
}

func (factory) DefaultConfig() types.Config {
	return types.Config{BaseURL: DefaultBaseURL, Model: DefaultModel}
}

func (factory) ValidateConfig(cfg types.Config) error {
	if cfg.APIKey == "" {
		return llmerrors.New(llmerrors.KindInvalidRequest, "elevenlabs: apiKey is required")
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
	}
	sink := transport.NewClient(transport.Config{
		BaseURL: baseURL,
		Headers: map[string]string{
			"xi-api-key": cfg.APIKey,
		},
		ErrorMapper: llmerrors.MapHTTPStatus,
	})
	return &Provider{sink: sink, modelID: modelID}, nil
}

// Synthesize converts text to speech using voice, or DefaultVoiceID when
// voice is empty, returning MP3-encoded audio (spec.md §4.I).
func (p *Provider) Synthesize(ctx context.Context, text, voice string) (*types.SpeechResult, error) {
	if voice == "" {
		voice = DefaultVoiceID
	}
	body := map[string]any{
		"text":     text,
		"model_id": p.modelID,
		"voice_settings": map[string]any{
			"stability":        0.5,
			"similarity_boost": 0.5,
		},
	}
	audio, err := p.sink.PostBytes(ctx, fmt.Sprintf(speechPath, voice), nil, body)
	if err != nil {
		return nil, err
	}
	return &types.SpeechResult{
		Audio:    audio,
		MimeType: "audio/mpeg",
		Usage:    types.SpeechUsage{CharacterCount: len(text)},
	}, nil
}
