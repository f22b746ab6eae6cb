package provider

import (
	"context"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/registry"
)

// SpeechModel is the capability surface a provider advertising
// CapTextToSpeech implements, grounded on the teacher's
// provider.SpeechModel interface (spec.md §4.I).
type SpeechModel interface {
	registry.Provider

	// Synthesize converts text to audio using the given voice; an empty
	// voice lets the provider pick its default.
	Synthesize(ctx context.Context, text, voice string) (*types.SpeechResult, error)
}

// TranscriptionModel is the capability surface a provider advertising
// CapSpeechToText implements.
type TranscriptionModel interface {
	registry.Provider

	// Transcribe converts audio bytes of the given MIME type to text.
	Transcribe(ctx context.Context, audio []byte, mimeType string) (*types.TranscriptionResult, error)
}

// ImageModel is the capability surface a provider advertising
// CapImageGeneration implements.
type ImageModel interface {
	registry.Provider

	// GenerateImage produces one or more images from a text prompt.
	GenerateImage(ctx context.Context, prompt string, n int) (*types.ImageResult, error)
}
