package openrouter

import "github.com/quillhq/llmkit/pkg/provider/types"

// OnlineTransformer implements OpenRouter's plugin-based web search
// (spec.md §4.H): the webSearchEnabled extension appends the `:online`
// model shortcut, and a searchPrompt extension attaches the web plugin's
// search_prompt directly.
func OnlineTransformer(body map[string]any, cfg types.Config) map[string]any {
	enabled, _, _ := types.GetExtension[bool](cfg, "webSearchEnabled")
	prompt, hasPrompt, _ := types.GetExtension[string](cfg, "searchPrompt")

	if !enabled && !hasPrompt {
		return body
	}

	if enabled {
		if model, ok := body["model"].(string); ok {
			body["model"] = model + ":online"
		}
	}

	if hasPrompt {
		plugin := map[string]any{"id": "web", "search_prompt": prompt}
		body["plugins"] = []map[string]any{plugin}
	}

	return body
}
