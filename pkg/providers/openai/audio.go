package openai

import (
	"context"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/providerutils/openaicompat"
	"github.com/quillhq/llmkit/pkg/transport"
)

const (
	DefaultTranscriptionModel = "whisper-1"
	DefaultSpeechModel        = "tts-1"
	DefaultVoice              = "alloy"
)

// Transcribe implements provider.TranscriptionModel, grounded on the
// teacher's providers/openai/transcription_model.go multipart builder.
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

// Synthesize implements provider.SpeechModel. voice defaults to
// DefaultVoice when empty.
func (p *Provider) Synthesize(ctx context.Context, text, voice string) (*types.SpeechResult, error) {
	if voice == "" {
		voice = DefaultVoice
	}
	body := map[string]any{
		"model": DefaultSpeechModel,
		"input": text,
		"voice": voice,
	}
	audio, err := p.sink.PostBytes(ctx, "/audio/speech", nil, body)
	if err != nil {
		return nil, err
	}
	return &types.SpeechResult{
		Audio:    audio,
		MimeType: "audio/mpeg",
		Usage:    types.SpeechUsage{CharacterCount: len(text)},
	}, nil
}
