package groq

import (
	"context"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/providerutils/openaicompat"
	"github.com/quillhq/llmkit/pkg/transport"
)

// DefaultTranscriptionModel is Groq's Whisper-compatible speech-to-text
// model, reachable through the same OpenAI-shaped multipart endpoint the
// teacher's providers/openai/transcription_model.go builds.
const DefaultTranscriptionModel = "whisper-large-v3-turbo"

// Transcribe implements provider.TranscriptionModel.
func (p *Provider) Transcribe(ctx context.Context, audio []byte, mimeType string) (*types.TranscriptionResult, error) {
	fields := []transport.FormField{
		{Name: "file", FileName: "audio" + openaicompat.ExtensionForMime(mimeType), Data: audio},
		{Name: "model", Value: DefaultTranscriptionModel},
		{Name: "response_format", Value: "verbose_json"},
	}
	var resp struct {
		Text     string  `json:"text"`
		Language string  `json:"language"`
		Duration float64 `json:"duration"`
	}
	if err := p.sink.PostForm(ctx, "/audio/transcriptions", nil, fields, &resp); err != nil {
		return nil, err
	}
	return &types.TranscriptionResult{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
		Usage:    types.TranscriptionUsage{Seconds: resp.Duration},
	}, nil
}
