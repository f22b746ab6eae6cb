package openaicompat

import (
	"encoding/json"

	sharedprovider "github.com/quillhq/llmkit/pkg/provider"
	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/sse"
	"github.com/quillhq/llmkit/pkg/transport"
)

// toolCallAcc accumulates one streamed tool call by its delta index, the
// piece the teacher's openAIStream.Next leaves as `// TODO: Handle
// streaming tool calls` (providers/openai/language_model.go).
type toolCallAcc struct {
	id   string
	name string
	args string
}

// chatStream implements spec.md §4.G.4's simplified OpenAI-compatible SSE
// state machine: concatenate choices[0].delta.content as TextDelta; collect
// delta.tool_calls[*] per index, emitting ToolCallDelta on the event that
// terminates a tool call (finish_reason=tool_calls, or stream end).
type chatStream struct {
	fr      *sse.FrameReader
	modelID string

	toolOrder []int
	tools     map[int]*toolCallAcc
	usage     chatUsage
	finish    string
	done      bool
	draining  bool
}

func newStream(sr transport.StreamReader, modelID string) *chatStream {
	return &chatStream{
		fr:      sharedprovider.NewFrameReader(sr),
		modelID: modelID,
		tools:   map[int]*toolCallAcc{},
	}
}

type chatStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Index    int    `json:"index"`
				ID       string `json:"id"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *chatUsage `json:"usage"`
}

// step advances the state machine by one SSE event, mirroring
// anthropicStream.step's (event, terminal, emit) shape.
func (s *chatStream) step() (types.StreamEvent, bool, bool) {
	if s.done {
		return types.StreamEvent{}, true, false
	}
	if s.draining {
		ev := s.popToolCall()
		if len(s.toolOrder) == 0 {
			s.draining = false
		}
		return ev, false, true
	}

	ev, err := s.fr.Next()
	if err != nil && !sharedprovider.IsStreamEOF(err) {
		s.done = true
		return types.ErrorEvent(llmerrors.Wrap(llmerrors.KindGeneric, "openai-compatible stream transport error", err)), true, true
	}
	if err != nil || ev.IsDone() {
		// Stream end: emit tool calls no finish_reason flushed before completing.
		if len(s.toolOrder) > 0 {
			tc := s.popToolCall()
			s.draining = len(s.toolOrder) > 0
			return tc, false, true
		}
		s.done = true
		return types.CompletionEvent(s.finalResult()), true, true
	}

	var chunk chatStreamChunk
	if err := json.Unmarshal([]byte(ev.Data), &chunk); err != nil {
		return types.StreamEvent{}, false, false
	}
	if chunk.Usage != nil {
		s.usage = *chunk.Usage
	}
	if len(chunk.Choices) == 0 {
		return types.StreamEvent{}, false, false
	}
	choice := chunk.Choices[0]
	if choice.FinishReason != "" {
		s.finish = choice.FinishReason
	}

	for _, tc := range choice.Delta.ToolCalls {
		acc, ok := s.tools[tc.Index]
		if !ok {
			acc = &toolCallAcc{}
			s.tools[tc.Index] = acc
			s.toolOrder = append(s.toolOrder, tc.Index)
		}
		if tc.ID != "" {
			acc.id = tc.ID
		}
		if tc.Function.Name != "" {
			acc.name = tc.Function.Name
		}
		acc.args += tc.Function.Arguments
	}

	if choice.Delta.Content != "" {
		return types.TextDeltaEvent(choice.Delta.Content), false, true
	}

	if (choice.FinishReason == "tool_calls" || choice.FinishReason == "function_call") && len(s.toolOrder) > 0 {
		ev := s.popToolCall()
		s.draining = len(s.toolOrder) > 0
		return ev, false, true
	}

	return types.StreamEvent{}, false, false
}

// popToolCall drains one accumulated tool call so each becomes its own
// ToolCallDelta event, matching Anthropic's per-block cadence instead of
// one event carrying every call at once. Callers must check toolOrder is
// non-empty before calling.
func (s *chatStream) popToolCall() types.StreamEvent {
	idx := s.toolOrder[0]
	s.toolOrder = s.toolOrder[1:]
	acc := s.tools[idx]
	delete(s.tools, idx)
	return types.ToolCallDeltaEvent(types.ToolCall{
		ID: acc.id, Kind: "function",
		Function: types.ToolCallFunction{Name: acc.name, ArgumentsJSON: acc.args},
	})
}

func (s *chatStream) finalResult() *types.GenerateResult {
	result := &types.GenerateResult{ModelID: s.modelID, Usage: convertUsage(s.usage)}
	result.FinishReason = mapFinishReason(s.finish)
	return result
}
