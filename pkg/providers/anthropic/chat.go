package anthropic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/quillhq/llmkit/pkg/internal/heuristic"
	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/telemetry"
	"go.opentelemetry.io/otel/trace"
)

// MaxThinkingBudgetTokens is the ceiling this library enforces on
// thinkingBudgetTokens before a request is ever sent (spec §8: "> model
// cap is an error"). Anthropic's documented per-model caps vary; this is
// the conservative ceiling shared across models that advertise reasoning.
const MaxThinkingBudgetTokens = 128000

// betaOutput128K is always present on every Messages API call (spec §6.2).
const betaOutput128K = "output-128k-2025-02-19"
const betaInterleavedThinking = "interleaved-thinking-2025-05-14"
const betaFilesAPI = "files-api-2025-04-14"
const betaMCPClient = "mcp-client-2025-04-04"

// buildRequestBody translates messages/cfg into the Anthropic Messages API
// wire body, per spec §4.G.1. It returns accumulated warnings alongside the
// body so callers can surface both without a second pass.
func buildRequestBody(cfg types.Config, messages []types.Message, stream bool) (map[string]any, []types.Warning, error) {
	var warnings []types.Warning

	systemText, nonSystem := partitionMessages(messages, cfg.SystemPrompt)
	if len(nonSystem) == 0 {
		return nil, nil, llmerrors.New(llmerrors.KindInvalidRequest, "anthropic: no non-system message remains after partitioning")
	}
	for _, m := range nonSystem {
		if m.IsEffectivelyEmpty() {
			return nil, nil, llmerrors.New(llmerrors.KindInvalidRequest, "anthropic: message content is effectively empty")
		}
	}
	if nonSystem[0].Role != types.RoleUser {
		warnings = append(warnings, types.Warning{Type: "message-order", Message: "first non-system message is not from the user"})
	}
	for i := 1; i < len(nonSystem); i++ {
		if nonSystem[i].Role == nonSystem[i-1].Role {
			warnings = append(warnings, types.Warning{Type: "message-order", Message: "consecutive messages share the same role"})
			break
		}
	}

	wireMessages, partWarnings := convertMessages(nonSystem)
	warnings = append(warnings, partWarnings...)

	body := map[string]any{
		"model":    cfg.Model,
		"messages": wireMessages,
		"stream":   stream,
	}
	if systemText != "" {
		body["system"] = systemText
	}

	maxTokens := DefaultMaxTokens
	if cfg.MaxTokens != nil {
		maxTokens = *cfg.MaxTokens
	}
	body["max_tokens"] = maxTokens

	reasoning, _, _ := types.GetExtension[bool](cfg, "reasoning")
	isThinking := reasoning
	if !isThinking {
		if cfg.Temperature != nil {
			body["temperature"] = *cfg.Temperature
			if *cfg.Temperature < 0 || *cfg.Temperature > 1 {
				warnings = append(warnings, types.Warning{Type: "temperature", Message: "temperature outside [0,1] forwarded as-is"})
			}
		}
		if cfg.TopK != nil {
			body["top_k"] = *cfg.TopK
		}
		if cfg.TopP != nil && cfg.Temperature == nil {
			body["top_p"] = *cfg.TopP
		}
	}
	if len(cfg.StopSequences) > 0 {
		body["stop_sequences"] = cfg.StopSequences
	}
	if cfg.ServiceTier != "" {
		body["service_tier"] = cfg.ServiceTier
	}

	metadata := map[string]any{}
	if cfg.User != "" {
		metadata["user_id"] = cfg.User
	}
	if extra, ok, _ := types.GetExtension[map[string]any](cfg, "metadata"); ok {
		for k, v := range extra {
			metadata[k] = v
		}
	}
	if len(metadata) > 0 {
		body["metadata"] = metadata
	}

	if container, ok, _ := types.GetExtension[string](cfg, "container"); ok && container != "" {
		body["container"] = container
	}

	if len(cfg.Tools) > 0 {
		body["tools"] = convertTools(cfg.Tools)
		if !cfg.ToolChoice.IsZero() {
			body["tool_choice"] = convertToolChoice(cfg.ToolChoice)
		}
	}

	if isThinking {
		thinking := map[string]any{"type": "enabled"}
		if budget, ok, _ := types.GetExtension[int](cfg, "thinkingBudgetTokens"); ok {
			if budget < 1024 {
				warnings = append(warnings, types.Warning{Type: "thinking-budget", Message: "thinkingBudgetTokens below 1024"})
			}
			if budget > MaxThinkingBudgetTokens {
				return nil, nil, llmerrors.New(llmerrors.KindInvalidRequest, fmt.Sprintf("anthropic: thinkingBudgetTokens %d exceeds the %d cap", budget, MaxThinkingBudgetTokens))
			}
			thinking["budget_tokens"] = budget
		}
		body["thinking"] = thinking
	}

	if servers, ok, _ := types.GetExtension[[]map[string]any](cfg, "mcpServers"); ok && len(servers) > 0 {
		body["mcp_servers"] = servers
	}

	return body, warnings, nil
}

// partitionMessages concatenates system-role messages (order preserved,
// `\n\n` separator) with cfg's systemPrompt and returns the remaining
// non-system messages untouched (spec §4.G.1).
func partitionMessages(messages []types.Message, systemPrompt string) (string, []types.Message) {
	var systemParts []string
	if systemPrompt != "" {
		systemParts = append(systemParts, systemPrompt)
	}
	var rest []types.Message
	for _, m := range messages {
		if m.Role == types.RoleSystem {
			systemParts = append(systemParts, m.Text())
			continue
		}
		rest = append(rest, m)
	}
	system := ""
	for i, s := range systemParts {
		if i > 0 {
			system += "\n\n"
		}
		system += s
	}
	return system, rest
}

func convertMessages(messages []types.Message) ([]map[string]any, []types.Warning) {
	var warnings []types.Warning
	out := make([]map[string]any, 0, len(messages))
	for _, m := range messages {
		content := make([]map[string]any, 0, len(m.Parts))
		for _, p := range m.Parts {
			blocks, warn := convertPart(p)
			content = append(content, blocks...)
			if warn != "" {
				warnings = append(warnings, types.Warning{Type: "unsupported-part", Message: warn})
			}
		}
		out = append(out, map[string]any{"role": string(m.Role), "content": content})
	}
	return out, warnings
}

// convertPart maps one Part to its Anthropic content block(s) per spec
// §4.G.2's vendor-part mapping table. A ToolUse/ToolResult part may carry
// several calls/results, each becoming its own block. Unsupported kinds are
// never dropped silently — they become an explanatory text block.
func convertPart(p types.Part) ([]map[string]any, string) {
	switch p.Kind {
	case types.PartText:
		return []map[string]any{{"type": "text", "text": p.Text}}, ""
	case types.PartImage:
		return []map[string]any{{
			"type": "image",
			"source": map[string]any{
				"type":       "base64",
				"media_type": string(p.ImageMimeType),
				"data":       base64.StdEncoding.EncodeToString(p.ImageBytes),
			},
		}}, ""
	case types.PartImageURL:
		note := "[Image URL not supported by Anthropic: " + p.URL + "]"
		return []map[string]any{{"type": "text", "text": note}}, "image URL substituted with a text note"
	case types.PartFile:
		if p.FileMimeType == "application/pdf" {
			return []map[string]any{{
				"type": "document",
				"source": map[string]any{
					"type":       "base64",
					"media_type": p.FileMimeType,
					"data":       base64.StdEncoding.EncodeToString(p.FileBytes),
				},
			}}, ""
		}
		note := fmt.Sprintf("[File of type %s not supported by Anthropic]", p.FileMimeType)
		return []map[string]any{{"type": "text", "text": note}}, "non-PDF file substituted with a text note"
	case types.PartToolUse:
		blocks := make([]map[string]any, 0, len(p.ToolCalls))
		for _, c := range p.ToolCalls {
			var input map[string]any
			_ = json.Unmarshal([]byte(c.Function.ArgumentsJSON), &input)
			if input == nil {
				input = map[string]any{}
			}
			blocks = append(blocks, map[string]any{"type": "tool_use", "id": c.ID, "name": c.Function.Name, "input": input})
		}
		return blocks, ""
	case types.PartToolResult:
		blocks := make([]map[string]any, 0, len(p.ToolResults))
		for _, r := range p.ToolResults {
			blocks = append(blocks, map[string]any{
				"type":        "tool_result",
				"tool_use_id": r.ToolCallID,
				"content":     r.Content,
				"is_error":    r.IsError,
			})
		}
		return blocks, ""
	default:
		note := fmt.Sprintf("[Unsupported content part %q]", p.Kind)
		return []map[string]any{{"type": "text", "text": note}}, "unsupported part kind replaced with a text note"
	}
}

// convertTools maps Tool definitions to Anthropic's input_schema shape
// (spec §4.G.1): description falls back to a non-empty placeholder and a
// missing properties map becomes `{}`.
func convertTools(tools []types.Tool) []map[string]any {
	out := make([]map[string]any, 0, len(tools))
	for _, t := range tools {
		desc := t.Function.Description
		if desc == "" {
			desc = t.Function.Name
		}
		properties := map[string]any{}
		for name, prop := range t.Function.Parameters.Properties {
			properties[name] = propertyToJSONSchema(prop)
		}
		schema := map[string]any{
			"type":       "object",
			"properties": properties,
		}
		if len(t.Function.Parameters.Required) > 0 {
			schema["required"] = t.Function.Parameters.Required
		}
		out = append(out, map[string]any{
			"name":         t.Function.Name,
			"description":  desc,
			"input_schema": schema,
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

// convertToolChoice maps ToolChoice to Anthropic's `{type,name}` object, or
// the literal string "none" — the modular (spec-authoritative) behavior,
// diverging from a legacy path that omits the field entirely (spec §9 Open
// Question, resolved in DESIGN.md).
func convertToolChoice(tc types.ToolChoice) any {
	switch tc.Kind {
	case types.ToolChoiceAuto:
		return toolChoiceObject("auto", "", tc.DisableParallel)
	case types.ToolChoiceAny:
		return toolChoiceObject("any", "", tc.DisableParallel)
	case types.ToolChoiceSpecific:
		return toolChoiceObject("tool", tc.ToolName, tc.DisableParallel)
	case types.ToolChoiceNone:
		return "none"
	default:
		return toolChoiceObject("auto", "", tc.DisableParallel)
	}
}

func toolChoiceObject(kind, name string, disableParallel bool) map[string]any {
	obj := map[string]any{"type": kind}
	if name != "" {
		obj["name"] = name
	}
	if disableParallel {
		obj["disable_parallel_tool_use"] = true
	}
	return obj
}

// anthropicResponse mirrors the Messages API's non-stream response body.
type anthropicResponse struct {
	Content    []anthropicContent `json:"content"`
	StopReason string             `json:"stop_reason"`
	Usage      anthropicUsage     `json:"usage"`
}

type anthropicContent struct {
	Type      string         `json:"type"`
	Text      string         `json:"text,omitempty"`
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Input     map[string]any `json:"input,omitempty"`
	Thinking  string         `json:"thinking,omitempty"`
	Signature string         `json:"signature,omitempty"`
	Data      string         `json:"data,omitempty"`
}

type anthropicUsage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens,omitempty"`
}

const redactedThinkingSentinel = "[Redacted thinking content - encrypted for safety]"

// convertResponse implements spec §4.G.3's non-stream response parsing.
func convertResponse(resp anthropicResponse, modelID string) *types.GenerateResult {
	result := &types.GenerateResult{ModelID: modelID, Raw: resp, Usage: convertUsage(resp.Usage)}

	var text, thinking string
	for _, c := range resp.Content {
		switch c.Type {
		case "text":
			if text != "" {
				text += "\n"
			}
			text += c.Text
		case "thinking":
			if thinking != "" {
				thinking += "\n"
			}
			thinking += c.Thinking
		case "redacted_thinking":
			if thinking != "" {
				thinking += "\n"
			}
			thinking += redactedThinkingSentinel
		case "tool_use", "mcp_tool_use":
			args, _ := json.Marshal(c.Input)
			result.ToolCalls = append(result.ToolCalls, types.ToolCall{
				ID: c.ID, Kind: "function",
				Function: types.ToolCallFunction{Name: c.Name, ArgumentsJSON: string(args)},
			})
		}
	}
	result.Text = text
	result.Thinking = thinking

	switch resp.StopReason {
	case "end_turn", "stop_sequence":
		result.FinishReason = types.FinishStop
	case "max_tokens":
		result.FinishReason = types.FinishLength
	case "tool_use":
		result.FinishReason = types.FinishToolCalls
	default:
		result.FinishReason = types.FinishOther
	}
	return result
}

func convertUsage(u anthropicUsage) types.Usage {
	input := int64(u.InputTokens)
	output := int64(u.OutputTokens)
	cacheRead := int64(u.CacheReadInputTokens)
	cacheWrite := int64(u.CacheCreationInputTokens)
	total := input + output + cacheRead + cacheWrite
	return types.Usage{
		PromptTokens:     &input,
		CompletionTokens: &output,
		TotalTokens:      &total,
		PromptDetails: &types.InputTokenDetails{
			NoCacheTokens:    &input,
			CacheReadTokens:  &cacheRead,
			CacheWriteTokens: &cacheWrite,
		},
		CompletionDetails: &types.OutputTokenDetails{TextTokens: &output},
	}
}

// betaHeaders composes the `anthropic-beta` header value per spec §6.2.
func betaHeaders(cfg types.Config, touchesFiles bool) string {
	headers := []string{betaOutput128K}
	if reasoning, _, _ := types.GetExtension[bool](cfg, "reasoning"); reasoning {
		if interleaved, _, _ := types.GetExtension[bool](cfg, "interleavedThinking"); interleaved {
			headers = append(headers, betaInterleavedThinking)
		}
	}
	if touchesFiles {
		headers = append(headers, betaFilesAPI)
	}
	if servers, ok, _ := types.GetExtension[[]map[string]any](cfg, "mcpServers"); ok && len(servers) > 0 {
		headers = append(headers, betaMCPClient)
	}
	out := ""
	for i, h := range headers {
		if i > 0 {
			out += ","
		}
		out += h
	}
	return out
}

func (p *Provider) requestHeaders() map[string]string {
	return map[string]string{"anthropic-beta": betaHeaders(p.cfg, false)}
}

// Chat performs one non-streaming completion (spec §4.G.1/§4.G.3).
func (p *Provider) Chat(ctx context.Context, messages []types.Message) (*types.GenerateResult, error) {
	tracer := telemetry.GetTracer(p.tracer)
	return telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
		Name:        "anthropic.chat",
		Attributes:  telemetry.GetBaseAttributes(ID, p.modelID, p.tracer, nil),
		EndWhenDone: true,
	}, func(ctx context.Context, span trace.Span) (*types.GenerateResult, error) {
		telemetry.AddSettingsAttributes(span, "llm.request", p.cfg.RequestSettings())
		body, warnings, err := buildRequestBody(p.cfg, messages, false)
		if err != nil {
			return nil, err
		}
		var resp anthropicResponse
		if err := p.sink.PostJSON(ctx, "/v1/messages", p.requestHeaders(), body, &resp); err != nil {
			return nil, err
		}
		result := convertResponse(resp, p.modelID)
		result.Warnings = append(result.Warnings, warnings...)
		return result, nil
	})
}

// CountTokens uses Anthropic's dedicated count_tokens endpoint when the
// request succeeds, falling back to the coarse heuristic otherwise (spec
// §4.G.5).
func (p *Provider) CountTokens(ctx context.Context, messages []types.Message) (int, error) {
	body, _, err := buildRequestBody(p.cfg, messages, false)
	if err != nil {
		return 0, err
	}
	delete(body, "stream")
	delete(body, "max_tokens")
	var resp struct {
		InputTokens int `json:"input_tokens"`
	}
	if err := p.sink.PostJSON(ctx, "/v1/messages/count_tokens", p.requestHeaders(), body, &resp); err == nil {
		return resp.InputTokens, nil
	}
	return heuristic.CountTokens(messages, p.cfg.Tools), nil
}
