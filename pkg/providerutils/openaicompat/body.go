// Package openaicompat generalizes the teacher's embedding-based vendor
// reuse (deepinfra.Provider embedding openai.Provider) into composable
// BodyTransformer/HeaderTransformer hooks, so every OpenAI-wire vendor
// shares one body builder, one response parser, and one streaming state
// machine (spec.md §4.H) instead of duplicating openai's translator.
package openaicompat

import (
	"encoding/base64"
	"fmt"

	"github.com/quillhq/llmkit/pkg/provider/types"
)

// BodyTransformer rewrites a built OpenAI-wire body for one vendor's
// extensions (google.ThinkingTransformer, xai.SearchTransformer,
// openrouter.OnlineTransformer). Registering none is a correctness
// requirement, not a convenience: a plain OpenAI call must produce
// byte-identical output to calling BuildBody directly (spec §8).
type BodyTransformer func(body map[string]any, cfg types.Config) map[string]any

// HeaderTransformer rewrites the outbound header set for one vendor.
type HeaderTransformer func(headers map[string]string, cfg types.Config) map[string]string

// ModelCaps gates which parameters a specific model ID accepts, grounded
// on the teacher's per-provider SupportsImageInput model-ID switches,
// generalized into a data table (spec §4.H).
type ModelCaps struct {
	SupportsReasoning   bool
	SupportsVision      bool
	SupportsToolCalling bool
	MaxContextLength    int
	DisableTemperature  bool
	DisableTopP         bool
	ReasoningEffortMap  map[string]string
}

// ModelCapabilityTable looks up ModelCaps by model ID; a missing entry
// means "assume full support, let the vendor reject what it can't do."
type ModelCapabilityTable map[string]ModelCaps

func (t ModelCapabilityTable) Lookup(modelID string) (ModelCaps, bool) {
	caps, ok := t[modelID]
	return caps, ok
}

// BuildBody translates messages/tools/cfg into the OpenAI Chat Completions
// wire body (spec §4.G.2/§4.H). Callers apply any BodyTransformer after
// this returns.
func BuildBody(cfg types.Config, messages []types.Message, stream bool, caps ModelCaps, hasCaps bool) map[string]any {
	body := map[string]any{
		"model":  cfg.Model,
		"stream": stream,
	}

	wireMessages := convertMessages(messages)
	if cfg.SystemPrompt != "" {
		wireMessages = append([]map[string]any{{"role": "system", "content": cfg.SystemPrompt}}, wireMessages...)
	}
	body["messages"] = wireMessages

	if cfg.MaxTokens != nil {
		body["max_tokens"] = *cfg.MaxTokens
	}
	if cfg.Temperature != nil && !(hasCaps && caps.DisableTemperature) {
		body["temperature"] = *cfg.Temperature
	}
	if cfg.TopP != nil && !(hasCaps && caps.DisableTopP) {
		body["top_p"] = *cfg.TopP
	}
	if len(cfg.StopSequences) > 0 {
		body["stop"] = cfg.StopSequences
	}
	if cfg.User != "" {
		body["user"] = cfg.User
	}
	if cfg.ServiceTier != "" {
		body["service_tier"] = cfg.ServiceTier
	}
	if seed, ok, _ := types.GetExtension[int](cfg, "seed"); ok {
		body["seed"] = seed
	}
	if freqPenalty, ok, _ := types.GetExtension[float64](cfg, "frequencyPenalty"); ok {
		body["frequency_penalty"] = freqPenalty
	}
	if presPenalty, ok, _ := types.GetExtension[float64](cfg, "presencePenalty"); ok {
		body["presence_penalty"] = presPenalty
	}
	if rf, ok, _ := types.GetExtension[string](cfg, "responseFormat"); ok && rf != "" {
		body["response_format"] = map[string]any{"type": rf}
	}

	if len(cfg.Tools) > 0 {
		body["tools"] = convertTools(cfg.Tools)
		if !cfg.ToolChoice.IsZero() {
			body["tool_choice"] = convertToolChoice(cfg.ToolChoice)
		}
	}

	return body
}

// BuildHeaders returns the base Authorization header; vendor
// HeaderTransformers add to this.
func BuildHeaders(cfg types.Config) map[string]string {
	headers := map[string]string{}
	if cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + cfg.APIKey
	}
	return headers
}

func convertMessages(messages []types.Message) []map[string]any {
	out := make([]map[string]any, 0, len(messages))
	for _, m := range messages {
		if m.Role == types.RoleSystem {
			out = append(out, map[string]any{"role": "system", "content": m.Text()})
			continue
		}
		out = append(out, convertMessage(m)...)
	}
	return out
}

// convertMessage may expand to several wire messages: an assistant turn
// with tool calls stays one message, but each ToolResult part becomes its
// own `role:tool` message (spec §4.G.2's OpenAI content-item column).
func convertMessage(m types.Message) []map[string]any {
	var toolResults []map[string]any
	var content []map[string]any
	var toolCalls []map[string]any

	for _, p := range m.Parts {
		switch p.Kind {
		case types.PartText:
			content = append(content, map[string]any{"type": "text", "text": p.Text})
		case types.PartImage:
			dataURL := fmt.Sprintf("data:%s;base64,%s", p.ImageMimeType, base64.StdEncoding.EncodeToString(p.ImageBytes))
			content = append(content, map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL}})
		case types.PartImageURL:
			content = append(content, map[string]any{"type": "image_url", "image_url": map[string]any{"url": p.URL}})
		case types.PartFile:
			note := fmt.Sprintf("[File of type %s attached]", p.FileMimeType)
			content = append(content, map[string]any{"type": "text", "text": note})
		case types.PartToolUse:
			for _, c := range p.ToolCalls {
				toolCalls = append(toolCalls, map[string]any{
					"id":   c.ID,
					"type": "function",
					"function": map[string]any{
						"name":      c.Function.Name,
						"arguments": c.Function.ArgumentsJSON,
					},
				})
			}
		case types.PartToolResult:
			for _, r := range p.ToolResults {
				toolResults = append(toolResults, map[string]any{
					"role":         "tool",
					"tool_call_id": r.ToolCallID,
					"content":      r.Content,
				})
			}
		default:
			content = append(content, map[string]any{"type": "text", "text": fmt.Sprintf("[Unsupported content part %q]", p.Kind)})
		}
	}

	var out []map[string]any
	if len(content) > 0 || len(toolCalls) > 0 {
		msg := map[string]any{"role": string(m.Role)}
		if len(content) > 0 {
			msg["content"] = content
		}
		if len(toolCalls) > 0 {
			msg["tool_calls"] = toolCalls
		}
		out = append(out, msg)
	}
	out = append(out, toolResults...)
	return out
}

func convertTools(tools []types.Tool) []map[string]any {
	out := make([]map[string]any, 0, len(tools))
	for _, t := range tools {
		properties := map[string]any{}
		for name, prop := range t.Function.Parameters.Properties {
			properties[name] = propertyToJSONSchema(prop)
		}
		schema := map[string]any{"type": "object", "properties": properties}
		if len(t.Function.Parameters.Required) > 0 {
			schema["required"] = t.Function.Parameters.Required
		}
		out = append(out, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        t.Function.Name,
				"description": t.Function.Description,
				"parameters":  schema,
			},
		})
	}
	return out
}

func propertyToJSONSchema(p types.Property) map[string]any {
	out := map[string]any{"type": string(p.Type)}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		out["enum"] = p.Enum
	}
	if p.Items != nil {
		out["items"] = propertyToJSONSchema(*p.Items)
	}
	if len(p.Properties) > 0 {
		props := map[string]any{}
		for name, child := range p.Properties {
			props[name] = propertyToJSONSchema(child)
		}
		out["properties"] = props
	}
	if len(p.Required) > 0 {
		out["required"] = p.Required
	}
	return out
}

func convertToolChoice(tc types.ToolChoice) any {
	switch tc.Kind {
	case types.ToolChoiceAuto:
		return "auto"
	case types.ToolChoiceAny:
		return "required"
	case types.ToolChoiceNone:
		return "none"
	case types.ToolChoiceSpecific:
		return map[string]any{"type": "function", "function": map[string]any{"name": tc.ToolName}}
	default:
		return "auto"
	}
}
