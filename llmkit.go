// Package llmkit is a unified client for chat, streaming, tool-calling,
// and reasoning across OpenAI, Anthropic, Google Gemini, DeepSeek, xAI,
// Groq, Phind, OpenRouter, Ollama, ElevenLabs, and other OpenAI-compatible
// backends. Importing this package registers every built-in provider with
// the default registry (pkg/registry.Default()); callers needing a smaller
// binary can instead import only the providers/<vendor> packages they use.
package llmkit

import (
	_ "github.com/quillhq/llmkit/pkg/providers/anthropic"
	_ "github.com/quillhq/llmkit/pkg/providers/deepseek"
	_ "github.com/quillhq/llmkit/pkg/providers/elevenlabs"
	_ "github.com/quillhq/llmkit/pkg/providers/google"
	_ "github.com/quillhq/llmkit/pkg/providers/groq"
	_ "github.com/quillhq/llmkit/pkg/providers/ollama"
	_ "github.com/quillhq/llmkit/pkg/providers/openai"
	_ "github.com/quillhq/llmkit/pkg/providers/openaicompatible"
	_ "github.com/quillhq/llmkit/pkg/providers/openrouter"
	_ "github.com/quillhq/llmkit/pkg/providers/phind"
	_ "github.com/quillhq/llmkit/pkg/providers/xai"
)
