package openaicompat

import (
	"github.com/quillhq/llmkit/pkg/provider/types"
)

// chatResponse mirrors the OpenAI Chat Completions non-stream response
// body, grounded on the teacher's providers/openai/language_model.go
// openAIResponse shape.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				ID       string `json:"id"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage chatUsage `json:"usage"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	PromptTokensDetails *struct {
		CachedTokens int `json:"cached_tokens"`
	} `json:"prompt_tokens_details"`
	CompletionTokensDetails *struct {
		ReasoningTokens int `json:"reasoning_tokens"`
	} `json:"completion_tokens_details"`
}

func convertResponse(resp chatResponse, modelID string) *types.GenerateResult {
	result := &types.GenerateResult{ModelID: modelID, Raw: resp, Usage: convertUsage(resp.Usage)}
	if len(resp.Choices) == 0 {
		result.FinishReason = types.FinishOther
		return result
	}
	choice := resp.Choices[0]
	result.Text = choice.Message.Content
	for _, tc := range choice.Message.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, types.ToolCall{
			ID: tc.ID, Kind: "function",
			Function: types.ToolCallFunction{Name: tc.Function.Name, ArgumentsJSON: tc.Function.Arguments},
		})
	}
	result.FinishReason = mapFinishReason(choice.FinishReason)
	return result
}

func mapFinishReason(reason string) types.FinishReason {
	switch reason {
	case "stop":
		return types.FinishStop
	case "length":
		return types.FinishLength
	case "content_filter":
		return types.FinishContentFilter
	case "tool_calls", "function_call":
		return types.FinishToolCalls
	default:
		return types.FinishOther
	}
}

// convertUsage implements the teacher's v6.0 detailed usage tracking
// (cached prompt tokens, reasoning completion tokens) against
// types.Usage's optional detail fields.
func convertUsage(u chatUsage) types.Usage {
	prompt := int64(u.PromptTokens)
	completion := int64(u.CompletionTokens)
	total := int64(u.TotalTokens)
	usage := types.Usage{PromptTokens: &prompt, CompletionTokens: &completion, TotalTokens: &total}

	if u.PromptTokensDetails != nil && u.PromptTokensDetails.CachedTokens > 0 {
		cached := int64(u.PromptTokensDetails.CachedTokens)
		noCache := prompt - cached
		usage.PromptDetails = &types.InputTokenDetails{NoCacheTokens: &noCache, CacheReadTokens: &cached}
	}
	if u.CompletionTokensDetails != nil && u.CompletionTokensDetails.ReasoningTokens > 0 {
		reasoning := int64(u.CompletionTokensDetails.ReasoningTokens)
		text := completion - reasoning
		usage.ReasoningTokens = &reasoning
		usage.CompletionDetails = &types.OutputTokenDetails{TextTokens: &text, ReasoningTokens: &reasoning}
	}
	return usage
}
