package openaicompat

import (
	"testing"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBodyBasicFields(t *testing.T) {
	maxTokens := 512
	cfg := types.Config{Model: "gpt-4o", MaxTokens: &maxTokens}
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}

	body := BuildBody(cfg, messages, false, ModelCaps{}, false)
	assert.Equal(t, "gpt-4o", body["model"])
	assert.Equal(t, false, body["stream"])
	assert.Equal(t, 512, body["max_tokens"])
}

func TestBuildBodyZeroTransformersIsDeterministic(t *testing.T) {
	cfg := types.Config{Model: "gpt-4o"}
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}

	a := BuildBody(cfg, messages, false, ModelCaps{}, false)
	b := BuildBody(cfg, messages, false, ModelCaps{}, false)
	assert.Equal(t, a, b)
}

func TestBuildBodySystemPromptPrepended(t *testing.T) {
	cfg := types.Config{Model: "gpt-4o", SystemPrompt: "be nice"}
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}

	body := BuildBody(cfg, messages, false, ModelCaps{}, false)
	wire := body["messages"].([]map[string]any)
	require.Len(t, wire, 2)
	assert.Equal(t, "system", wire[0]["role"])
	assert.Equal(t, "be nice", wire[0]["content"])
}

func TestBuildBodyDisableTemperatureSuppressesField(t *testing.T) {
	temp := 0.5
	cfg := types.Config{Model: "o1", Temperature: &temp}
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}

	body := BuildBody(cfg, messages, false, ModelCaps{DisableTemperature: true}, true)
	_, ok := body["temperature"]
	assert.False(t, ok)
}

func TestBuildBodyToolChoiceNoneMapsToLiteralString(t *testing.T) {
	cfg := types.Config{
		Model: "gpt-4o",
		Tools: []types.Tool{{Kind: "function", Function: types.Function{Name: "add", Parameters: types.ParametersSchema{Type: "object"}}}},
		ToolChoice: types.NoneToolChoice(),
	}
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}

	body := BuildBody(cfg, messages, false, ModelCaps{}, false)
	assert.Equal(t, "none", body["tool_choice"])
}

func TestBuildBodyToolChoiceAnyMapsToRequired(t *testing.T) {
	cfg := types.Config{
		Model:      "gpt-4o",
		Tools:      []types.Tool{{Kind: "function", Function: types.Function{Name: "add"}}},
		ToolChoice: types.AnyToolChoice(false),
	}
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}

	body := BuildBody(cfg, messages, false, ModelCaps{}, false)
	assert.Equal(t, "required", body["tool_choice"])
}

func TestConvertMessageExpandsToolResultsIntoOwnMessages(t *testing.T) {
	msg := types.Message{
		Role: types.RoleUser,
		Parts: []types.Part{
			types.ToolResultPart(types.ToolResultItem{ToolCallID: "t1", Content: "42"}),
		},
	}
	out := convertMessage(msg)
	require.Len(t, out, 1)
	assert.Equal(t, "tool", out[0]["role"])
	assert.Equal(t, "t1", out[0]["tool_call_id"])
}

func TestConvertMessageAssistantToolCallsStayOneMessage(t *testing.T) {
	msg := types.Message{
		Role: types.RoleAssistant,
		Parts: []types.Part{
			types.ToolUsePart(types.ToolCall{ID: "t1", Kind: "function", Function: types.ToolCallFunction{Name: "add", ArgumentsJSON: `{"a":1}`}}),
		},
	}
	out := convertMessage(msg)
	require.Len(t, out, 1)
	assert.Equal(t, "assistant", out[0]["role"])
	calls := out[0]["tool_calls"].([]map[string]any)
	require.Len(t, calls, 1)
	assert.Equal(t, "t1", calls[0]["id"])
}

func TestBuildHeadersSetsBearerAuth(t *testing.T) {
	headers := BuildHeaders(types.Config{APIKey: "sk-x"})
	assert.Equal(t, "Bearer sk-x", headers["Authorization"])
}

func TestModelCapabilityTableLookupMissingIsPermissive(t *testing.T) {
	table := ModelCapabilityTable{"o1": {DisableTemperature: true}}
	caps, ok := table.Lookup("gpt-4o")
	assert.False(t, ok)
	assert.False(t, caps.DisableTemperature)

	caps, ok = table.Lookup("o1")
	assert.True(t, ok)
	assert.True(t, caps.DisableTemperature)
}
