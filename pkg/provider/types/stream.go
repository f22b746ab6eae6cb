package types

import llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"

// StreamEventKind discriminates the closed StreamEvent sum (spec.md §3).
type StreamEventKind string

const (
	EventTextDelta     StreamEventKind = "text_delta"
	EventThinkingDelta StreamEventKind = "thinking_delta"
	EventToolCallDelta StreamEventKind = "tool_call_delta"
	EventCompletion    StreamEventKind = "completion"
	EventError         StreamEventKind = "error"
)

// StreamEvent is one item yielded by a streaming chat call. A stream
// terminates with exactly one EventCompletion or EventError, never both,
// and nothing follows either (spec §3 invariants, §8 testable property).
type StreamEvent struct {
	Kind StreamEventKind

	TextDelta     string
	ThinkingDelta string
	ToolCall      ToolCall
	Completion    *GenerateResult
	Err           *llmerrors.LLMError
}

func TextDeltaEvent(s string) StreamEvent { return StreamEvent{Kind: EventTextDelta, TextDelta: s} }

func ThinkingDeltaEvent(s string) StreamEvent {
	return StreamEvent{Kind: EventThinkingDelta, ThinkingDelta: s}
}

func ToolCallDeltaEvent(c ToolCall) StreamEvent {
	return StreamEvent{Kind: EventToolCallDelta, ToolCall: c}
}

func CompletionEvent(r *GenerateResult) StreamEvent {
	return StreamEvent{Kind: EventCompletion, Completion: r}
}

func ErrorEvent(e *llmerrors.LLMError) StreamEvent { return StreamEvent{Kind: EventError, Err: e} }

// Terminal reports whether this event ends a stream.
func (e StreamEvent) Terminal() bool {
	return e.Kind == EventCompletion || e.Kind == EventError
}
