package google

import "github.com/quillhq/llmkit/pkg/provider/types"

// ThinkingTransformer injects Gemini's OpenAI-wire thinking-config
// extension (spec.md §4.H, literal scenario 4): when reasoning-related
// extensions are set, it adds `extra_body.config.thinkingConfig` and, when
// `reasoningEffort` is set, `extra_body.reasoning_effort`.
func ThinkingTransformer(body map[string]any, cfg types.Config) map[string]any {
	reasoning, _, _ := types.GetExtension[bool](cfg, "reasoning")
	includeThoughts, hasIncludeThoughts, _ := types.GetExtension[bool](cfg, "includeThoughts")
	budget, hasBudget, _ := types.GetExtension[int](cfg, "thinkingBudgetTokens")

	if !reasoning && !hasIncludeThoughts && !hasBudget {
		return maybeApplyReasoningEffort(body, cfg)
	}

	thinkingConfig := map[string]any{"includeThoughts": reasoning || includeThoughts}
	if hasBudget {
		thinkingConfig["thinkingBudget"] = budget
	}

	extraBody, _ := body["extra_body"].(map[string]any)
	if extraBody == nil {
		extraBody = map[string]any{}
	}
	config, _ := extraBody["config"].(map[string]any)
	if config == nil {
		config = map[string]any{}
	}
	config["thinkingConfig"] = thinkingConfig
	extraBody["config"] = config
	body["extra_body"] = extraBody

	return maybeApplyReasoningEffort(body, cfg)
}

func maybeApplyReasoningEffort(body map[string]any, cfg types.Config) map[string]any {
	effort, ok, _ := types.GetExtension[string](cfg, "reasoningEffort")
	if !ok || effort == "" {
		return body
	}
	extraBody, _ := body["extra_body"].(map[string]any)
	if extraBody == nil {
		extraBody = map[string]any{}
	}
	extraBody["reasoning_effort"] = effort
	body["extra_body"] = extraBody
	return body
}

// IncludeThoughtsHeaderTransformer sets X-Goog-Include-Thoughts when
// reasoning is requested, per spec.md §4.H.
func IncludeThoughtsHeaderTransformer(headers map[string]string, cfg types.Config) map[string]string {
	reasoning, _, _ := types.GetExtension[bool](cfg, "reasoning")
	if reasoning {
		headers["X-Goog-Include-Thoughts"] = "true"
	}
	return headers
}
