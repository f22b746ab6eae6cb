package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequestBodyDefaultsMaxTokens(t *testing.T) {
	cfg := types.Config{Model: "claude-3-5-sonnet-latest"}
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}

	body, warnings, err := buildRequestBody(cfg, messages, false)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, DefaultMaxTokens, body["max_tokens"])
	assert.Equal(t, "claude-3-5-sonnet-latest", body["model"])
	assert.Equal(t, false, body["stream"])
}

func TestBuildRequestBodyRejectsNoNonSystemMessage(t *testing.T) {
	cfg := types.Config{Model: "claude-3-5-sonnet-latest", SystemPrompt: "be nice"}
	_, _, err := buildRequestBody(cfg, nil, false)
	require.Error(t, err)
	var llmErr *errors.LLMError
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, errors.KindInvalidRequest, llmErr.Kind)
}

func TestBuildRequestBodyRejectsEffectivelyEmptyMessage(t *testing.T) {
	cfg := types.Config{Model: "claude-3-5-sonnet-latest"}
	messages := []types.Message{{Role: types.RoleUser}}
	_, _, err := buildRequestBody(cfg, messages, false)
	require.Error(t, err)
}

func TestBuildRequestBodyWarnsOnMessageOrder(t *testing.T) {
	cfg := types.Config{Model: "claude-3-5-sonnet-latest"}
	messages := []types.Message{
		{Role: types.RoleAssistant, Parts: []types.Part{types.TextPart("hi")}},
		{Role: types.RoleAssistant, Parts: []types.Part{types.TextPart("again")}},
	}
	_, warnings, err := buildRequestBody(cfg, messages, false)
	require.NoError(t, err)
	var kinds []string
	for _, w := range warnings {
		kinds = append(kinds, w.Type)
	}
	assert.Contains(t, kinds, "message-order")
}

func TestBuildRequestBodySystemPartitioning(t *testing.T) {
	cfg := types.Config{Model: "m", SystemPrompt: "from-config"}
	messages := []types.Message{
		{Role: types.RoleSystem, Parts: []types.Part{types.TextPart("from-message")}},
		{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}},
	}
	body, _, err := buildRequestBody(cfg, messages, false)
	require.NoError(t, err)
	assert.Equal(t, "from-config\n\nfrom-message", body["system"])
}

func TestBuildRequestBodyToolChoiceNoneIsLiteralString(t *testing.T) {
	cfg := types.Config{
		Model: "m",
		Tools: []types.Tool{{Kind: "function", Function: types.Function{
			Name: "add",
			Parameters: types.ParametersSchema{Type: "object"},
		}}},
		ToolChoice: types.NoneToolChoice(),
	}
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}
	body, _, err := buildRequestBody(cfg, messages, false)
	require.NoError(t, err)
	assert.Equal(t, "none", body["tool_choice"])
}

func TestBuildRequestBodyThinkingBudgetOverCapIsError(t *testing.T) {
	cfg := types.Config{Model: "m"}.
		WithExtension("reasoning", true).
		WithExtension("thinkingBudgetTokens", MaxThinkingBudgetTokens+1)
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}
	_, _, err := buildRequestBody(cfg, messages, false)
	require.Error(t, err)
	var llmErr *errors.LLMError
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, errors.KindInvalidRequest, llmErr.Kind)
}

func TestBuildRequestBodyThinkingBudgetUnderFloorWarns(t *testing.T) {
	cfg := types.Config{Model: "m"}.
		WithExtension("reasoning", true).
		WithExtension("thinkingBudgetTokens", 100)
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}
	_, warnings, err := buildRequestBody(cfg, messages, false)
	require.NoError(t, err)
	var kinds []string
	for _, w := range warnings {
		kinds = append(kinds, w.Type)
	}
	assert.Contains(t, kinds, "thinking-budget")
}

func TestBuildRequestBodyThinkingSuppressesTemperatureTopP(t *testing.T) {
	temp := 0.7
	topP := 0.9
	cfg := types.Config{Model: "m", Temperature: &temp, TopP: &topP}.WithExtension("reasoning", true)
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}
	body, _, err := buildRequestBody(cfg, messages, false)
	require.NoError(t, err)
	_, hasTemp := body["temperature"]
	assert.False(t, hasTemp)
	_, hasTopP := body["top_p"]
	assert.False(t, hasTopP)
	assert.Contains(t, body, "thinking")
}

func TestConvertPartImageURLSubstitutesTextNote(t *testing.T) {
	blocks, warn := convertPart(types.ImageURLPart("https://example.com/cat.png"))
	require.Len(t, blocks, 1)
	assert.Equal(t, "text", blocks[0]["type"])
	assert.Equal(t, "[Image URL not supported by Anthropic: https://example.com/cat.png]", blocks[0]["text"])
	assert.NotEmpty(t, warn)
}

func TestConvertPartMultipleToolCallsBecomeSeparateBlocks(t *testing.T) {
	p := types.ToolUsePart(
		types.ToolCall{ID: "t1", Kind: "function", Function: types.ToolCallFunction{Name: "add", ArgumentsJSON: `{"a":1}`}},
		types.ToolCall{ID: "t2", Kind: "function", Function: types.ToolCallFunction{Name: "sub", ArgumentsJSON: `{"b":2}`}},
	)
	blocks, warn := convertPart(p)
	require.Len(t, blocks, 2)
	assert.Empty(t, warn)
	assert.Equal(t, "t1", blocks[0]["id"])
	assert.Equal(t, "t2", blocks[1]["id"])
}

func TestConvertToolChoiceMapsKinds(t *testing.T) {
	assert.Equal(t, "none", convertToolChoice(types.NoneToolChoice()))

	auto := convertToolChoice(types.AutoToolChoice(false)).(map[string]any)
	assert.Equal(t, "auto", auto["type"])

	specific := convertToolChoice(types.SpecificToolChoice("add", false)).(map[string]any)
	assert.Equal(t, "tool", specific["type"])
	assert.Equal(t, "add", specific["name"])
}

func TestConvertResponseJoinsAllTextBlocks(t *testing.T) {
	resp := anthropicResponse{
		Content: []anthropicContent{
			{Type: "text", Text: "hello"},
			{Type: "text", Text: "world"},
		},
		StopReason: "end_turn",
		Usage:      anthropicUsage{InputTokens: 10, OutputTokens: 5},
	}
	result := convertResponse(resp, "claude-3-5-sonnet-latest")
	assert.Equal(t, "hello\nworld", result.Text)
	assert.Equal(t, types.FinishStop, result.FinishReason)
	assert.Equal(t, int64(10), *result.Usage.PromptTokens)
	assert.Equal(t, int64(5), *result.Usage.CompletionTokens)
}

func TestConvertResponseRedactedThinkingUsesSentinel(t *testing.T) {
	resp := anthropicResponse{Content: []anthropicContent{{Type: "redacted_thinking"}}}
	result := convertResponse(resp, "m")
	assert.Equal(t, redactedThinkingSentinel, result.Thinking)
}

func TestConvertResponseToolUseRoundTripsArguments(t *testing.T) {
	resp := anthropicResponse{
		Content: []anthropicContent{
			{Type: "tool_use", ID: "t1", Name: "add", Input: map[string]any{"a": float64(1), "b": float64(2)}},
		},
		StopReason: "tool_use",
	}
	result := convertResponse(resp, "m")
	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "add", result.ToolCalls[0].Function.Name)
	var args map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.ToolCalls[0].Function.ArgumentsJSON), &args))
	assert.Equal(t, float64(1), args["a"])
	assert.Equal(t, types.FinishToolCalls, result.FinishReason)
}

func TestBetaHeadersAlwaysIncludesOutput128K(t *testing.T) {
	assert.Equal(t, betaOutput128K, betaHeaders(types.Config{}, false))
}

func TestBetaHeadersInterleavedThinkingRequiresBothExtensions(t *testing.T) {
	cfg := types.Config{}.WithExtension("reasoning", true)
	assert.Equal(t, betaOutput128K, betaHeaders(cfg, false))

	cfg = cfg.WithExtension("interleavedThinking", true)
	assert.Contains(t, betaHeaders(cfg, false), betaInterleavedThinking)
}

func TestBetaHeadersMCPServersExtension(t *testing.T) {
	cfg := types.Config{}.WithExtension("mcpServers", []map[string]any{{"type": "url"}})
	assert.Contains(t, betaHeaders(cfg, false), betaMCPClient)
}

func TestChatPostsAndParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicResponse{
			Content:    []anthropicContent{{Type: "text", Text: "hi there"}},
			StopReason: "end_turn",
			Usage:      anthropicUsage{InputTokens: 3, OutputTokens: 2},
		})
	}))
	defer srv.Close()

	f := factory{}
	cfg := types.Config{APIKey: "sk-test", Model: "claude-3-5-sonnet-latest", BaseURL: srv.URL}
	p, err := f.Create(cfg)
	require.NoError(t, err)

	result, err := p.(*Provider).Chat(context.Background(), []types.Message{
		{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hello")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "hi there", result.Text)
}

func TestCountTokensFallsBackToHeuristicOnEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := factory{}
	cfg := types.Config{APIKey: "sk-test", Model: "m", BaseURL: srv.URL}
	p, err := f.Create(cfg)
	require.NoError(t, err)

	n, err := p.(*Provider).CountTokens(context.Background(), []types.Message{
		{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hello there")}},
	})
	require.NoError(t, err)
	assert.Greater(t, n, 0)
}
