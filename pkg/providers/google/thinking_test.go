package google

import (
	"testing"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestThinkingTransformerLiteralScenario is spec.md §8 scenario 4 verbatim:
// reasoning+thinkingBudgetTokens produces extra_body.config.thinkingConfig
// and the X-Goog-Include-Thoughts header.
func TestThinkingTransformerLiteralScenario(t *testing.T) {
	cfg := types.Config{Model: "gemini-2.0-flash"}.
		WithExtension("reasoning", true).
		WithExtension("thinkingBudgetTokens", 2048)

	body := map[string]any{"model": cfg.Model}
	body = ThinkingTransformer(body, cfg)

	extraBody := body["extra_body"].(map[string]any)
	config := extraBody["config"].(map[string]any)
	thinkingConfig := config["thinkingConfig"].(map[string]any)
	assert.Equal(t, true, thinkingConfig["includeThoughts"])
	assert.Equal(t, 2048, thinkingConfig["thinkingBudget"])

	headers := IncludeThoughtsHeaderTransformer(map[string]string{}, cfg)
	assert.Equal(t, "true", headers["X-Goog-Include-Thoughts"])
}

func TestThinkingTransformerNoopWithoutReasoningExtensions(t *testing.T) {
	cfg := types.Config{Model: "gemini-2.0-flash"}
	body := map[string]any{"model": cfg.Model}
	out := ThinkingTransformer(body, cfg)
	_, ok := out["extra_body"]
	assert.False(t, ok)
}

func TestThinkingTransformerReasoningEffort(t *testing.T) {
	cfg := types.Config{Model: "gemini-2.5-pro"}.WithExtension("reasoningEffort", "high")
	body := ThinkingTransformer(map[string]any{}, cfg)
	extraBody := body["extra_body"].(map[string]any)
	assert.Equal(t, "high", extraBody["reasoning_effort"])
}

func TestFactoryDefaultsToOpenAICompatibleBaseURL(t *testing.T) {
	f := factory{}
	require.Equal(t, DefaultBaseURL, f.DefaultConfig().BaseURL)
}
