package anthropic

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/quillhq/llmkit/pkg/internal/jsonrepair"
	sharedprovider "github.com/quillhq/llmkit/pkg/provider"
	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/sse"
	"github.com/quillhq/llmkit/pkg/telemetry"
	"github.com/quillhq/llmkit/pkg/transport"
	"go.opentelemetry.io/otel/trace"
)

// streamState is the explicit state field spec §9 asks for, rather than
// implicit coroutine state, so resumption/cancellation stay cheap.
type streamState int

const (
	stateIdle streamState = iota
	stateMessageStarted
	stateInTextBlock
	stateInThinkingBlock
	stateInToolUseBlock
	stateCompleted
	stateErrored
)

type toolUseAcc struct {
	id   string
	name string
	buf  strings.Builder
}

// anthropicStream implements the Messages API SSE state machine of spec
// §4.G.4: IDLE/MESSAGE_STARTED/IN_TEXT_BLOCK/IN_THINKING_BLOCK/
// IN_TOOL_USE_BLOCK(acc)/COMPLETED/ERRORED, keyed by content-block index.
type anthropicStream struct {
	frames  frameSource
	modelID string

	state      streamState
	blockKind  map[int]string // index -> "text"|"thinking"|"tool_use"
	toolAccs   map[int]*toolUseAcc
	inputUsage anthropicUsage
	stopReason string
	warnings   []types.Warning
}

// frameSource is the subset of *sse.FrameReader this state machine needs,
// narrowed so tests can supply a fake without constructing a real stream.
type frameSource interface {
	Next() (event, data string, eof bool, err error)
}

func (p *Provider) newStream(fr *sseFrames) *anthropicStream {
	return &anthropicStream{
		frames:    fr,
		modelID:   p.modelID,
		blockKind: map[int]string{},
		toolAccs:  map[int]*toolUseAcc{},
	}
}

// ChatStream performs one streaming completion (spec §4.G.4).
func (p *Provider) ChatStream(ctx context.Context, messages []types.Message) (<-chan types.StreamEvent, error) {
	tracer := telemetry.GetTracer(p.tracer)
	return telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
		Name:       "anthropic.chat_stream",
		Attributes: telemetry.GetBaseAttributes(ID, p.modelID, p.tracer, nil),
	}, func(ctx context.Context, span trace.Span) (<-chan types.StreamEvent, error) {
		telemetry.AddSettingsAttributes(span, "llm.request", p.cfg.RequestSettings())
		body, warnings, err := buildRequestBody(p.cfg, messages, true)
		if err != nil {
			return nil, err
		}
		sr, err := p.sink.PostSSE(ctx, "/v1/messages", p.requestHeaders(), body)
		if err != nil {
			return nil, err
		}

		out := make(chan types.StreamEvent)
		stream := p.newStream(newSSEFrames(sr))
		stream.warnings = warnings
		go func() {
			defer span.End()
			defer close(out)
			defer sr.Close()
			for {
				ev, terminal, ok := stream.step()
				if ok {
					if ev.Err != nil {
						telemetry.RecordErrorOnSpan(span, ev.Err)
					}
					select {
					case out <- ev:
					case <-ctx.Done():
						return
					}
				}
				if terminal {
					return
				}
			}
		}()
		return out, nil
	})
}

// step advances the state machine by one SSE event, returning at most one
// StreamEvent to emit and whether the stream has reached a terminal state.
func (s *anthropicStream) step() (types.StreamEvent, bool, bool) {
	event, data, eof, err := s.frames.Next()
	if eof {
		if s.state != stateCompleted && s.state != stateErrored {
			return types.CompletionEvent(s.finalResult()), true, true
		}
		return types.StreamEvent{}, true, false
	}
	if err != nil {
		s.state = stateErrored
		return types.ErrorEvent(llmerrors.Wrap(llmerrors.KindGeneric, "anthropic stream transport error", err)), true, true
	}

	switch event {
	case "ping":
		return types.StreamEvent{}, false, false
	case "message_start":
		s.state = stateMessageStarted
		s.captureMessageStartUsage(data)
		return types.StreamEvent{}, false, false
	case "content_block_start":
		return s.onContentBlockStart(data)
	case "content_block_delta":
		return s.onContentBlockDelta(data)
	case "content_block_stop":
		return s.onContentBlockStop(data)
	case "message_delta":
		s.captureMessageDelta(data)
		return types.StreamEvent{}, false, false
	case "message_stop":
		s.state = stateCompleted
		return types.CompletionEvent(s.finalResult()), true, true
	case "error":
		s.state = stateErrored
		ev := types.ErrorEvent(parseStreamError(data))
		return ev, true, true
	default:
		return types.StreamEvent{}, false, false
	}
}

func (s *anthropicStream) onContentBlockStart(data string) (types.StreamEvent, bool, bool) {
	var start struct {
		Index        int `json:"index"`
		ContentBlock struct {
			Type string `json:"type"`
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"content_block"`
	}
	if err := json.Unmarshal([]byte(data), &start); err != nil {
		return types.StreamEvent{}, false, false
	}
	switch start.ContentBlock.Type {
	case "text":
		s.blockKind[start.Index] = "text"
		s.state = stateInTextBlock
	case "thinking", "redacted_thinking":
		s.blockKind[start.Index] = "thinking"
		s.state = stateInThinkingBlock
	case "tool_use":
		s.blockKind[start.Index] = "tool_use"
		s.toolAccs[start.Index] = &toolUseAcc{id: start.ContentBlock.ID, name: start.ContentBlock.Name}
		s.state = stateInToolUseBlock
	}
	return types.StreamEvent{}, false, false
}

func (s *anthropicStream) onContentBlockDelta(data string) (types.StreamEvent, bool, bool) {
	var delta struct {
		Index int `json:"index"`
		Delta struct {
			Type        string `json:"type"`
			Text        string `json:"text"`
			Thinking    string `json:"thinking"`
			PartialJSON string `json:"partial_json"`
		} `json:"delta"`
	}
	if err := json.Unmarshal([]byte(data), &delta); err != nil {
		return types.StreamEvent{}, false, false
	}
	switch delta.Delta.Type {
	case "text_delta":
		if delta.Delta.Text == "" {
			return types.StreamEvent{}, false, false
		}
		return types.TextDeltaEvent(delta.Delta.Text), false, true
	case "thinking_delta":
		if delta.Delta.Thinking == "" {
			return types.StreamEvent{}, false, false
		}
		return types.ThinkingDeltaEvent(delta.Delta.Thinking), false, true
	case "input_json_delta":
		if acc := s.toolAccs[delta.Index]; acc != nil {
			acc.buf.WriteString(delta.Delta.PartialJSON)
		}
		return types.StreamEvent{}, false, false
	default:
		return types.StreamEvent{}, false, false
	}
}

func (s *anthropicStream) onContentBlockStop(data string) (types.StreamEvent, bool, bool) {
	var stop struct {
		Index int `json:"index"`
	}
	if err := json.Unmarshal([]byte(data), &stop); err != nil {
		return types.StreamEvent{}, false, false
	}
	kind := s.blockKind[stop.Index]
	delete(s.blockKind, stop.Index)
	s.state = stateMessageStarted

	if kind != "tool_use" {
		return types.StreamEvent{}, false, false
	}
	acc := s.toolAccs[stop.Index]
	delete(s.toolAccs, stop.Index)
	if acc == nil {
		return types.StreamEvent{}, false, false
	}
	raw := acc.buf.String()
	if raw == "" {
		raw = "{}"
	}
	var probe map[string]any
	if err := jsonrepair.Unmarshal(raw, &probe); err != nil {
		s.state = stateErrored
		return types.ErrorEvent(llmerrors.New(llmerrors.KindJSONParse, "anthropic: malformed tool call arguments: "+err.Error())), true, true
	}
	repaired, err := json.Marshal(probe)
	if err != nil {
		s.state = stateErrored
		return types.ErrorEvent(llmerrors.New(llmerrors.KindJSONParse, "anthropic: malformed tool call arguments: "+err.Error())), true, true
	}
	return types.ToolCallDeltaEvent(types.ToolCall{
		ID: acc.id, Kind: "function",
		Function: types.ToolCallFunction{Name: acc.name, ArgumentsJSON: string(repaired)},
	}), false, true
}

func (s *anthropicStream) captureMessageStartUsage(data string) {
	var msg struct {
		Message struct {
			Usage anthropicUsage `json:"usage"`
		} `json:"message"`
	}
	if err := json.Unmarshal([]byte(data), &msg); err == nil {
		s.inputUsage = msg.Message.Usage
	}
}

func (s *anthropicStream) captureMessageDelta(data string) {
	var delta struct {
		Delta struct {
			StopReason string `json:"stop_reason"`
		} `json:"delta"`
		Usage anthropicUsage `json:"usage"`
	}
	if err := json.Unmarshal([]byte(data), &delta); err == nil {
		if delta.Delta.StopReason != "" {
			s.stopReason = delta.Delta.StopReason
		}
		s.inputUsage.OutputTokens = delta.Usage.OutputTokens
	}
}

func (s *anthropicStream) finalResult() *types.GenerateResult {
	result := &types.GenerateResult{ModelID: s.modelID, Usage: convertUsage(s.inputUsage), Warnings: s.warnings}
	switch s.stopReason {
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

func parseStreamError(data string) *llmerrors.LLMError {
	var probe struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(data), &probe); err != nil || probe.Error.Type == "" {
		return llmerrors.New(llmerrors.KindProvider, "anthropic: stream error event")
	}
	return llmerrors.MapAnthropicError(0, []byte(data), nil)
}

// sseFrames adapts *sse.FrameReader's (Event, error) shape to frameSource's
// (event, data, eof, err) shape, isolating the state machine above from the
// sse package's error-sentinel convention.
type sseFrames struct {
	fr *sse.FrameReader
}

func newSSEFrames(sr transport.StreamReader) *sseFrames {
	return &sseFrames{fr: sharedprovider.NewFrameReader(sr)}
}

func (f *sseFrames) Next() (event, data string, eof bool, err error) {
	ev, nextErr := f.fr.Next()
	if nextErr != nil {
		if sharedprovider.IsStreamEOF(nextErr) {
			return "", "", true, nil
		}
		return "", "", false, nextErr
	}
	if ev.IsDone() {
		return "", "", true, nil
	}
	return ev.Event, ev.Data, false, nil
}
