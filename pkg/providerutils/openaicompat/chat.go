package openaicompat

import (
	"context"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/telemetry"
	"github.com/quillhq/llmkit/pkg/transport"
	"go.opentelemetry.io/otel/trace"
)

// Chat performs one OpenAI-wire completion (stream or not), grounded on the
// teacher's providers/openai/language_model.go DoGenerate/DoStream split,
// generalized so every vendor package supplies only its provider ID, path,
// capability table, and optional Body/HeaderTransformer (spec.md §4.H).
//
// A vendor registering nil for both transformers gets byte-identical
// output to calling BuildBody/BuildHeaders directly — the façade is a
// conservative generalization, never a behavior change for plain OpenAI.
//
// providerID names the span the same way anthropic.Chat does
// ("<providerID>.chat"), using cfg.Telemetry the same way anthropic.Chat
// reads p.tracer.
func Chat(ctx context.Context, sink transport.Sink, providerID, path string, cfg types.Config, messages []types.Message, caps ModelCaps, hasCaps bool, bodyTx BodyTransformer, headerTx HeaderTransformer) (*types.GenerateResult, error) {
	tracer := telemetry.GetTracer(cfg.Telemetry)
	return telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
		Name:        providerID + ".chat",
		Attributes:  telemetry.GetBaseAttributes(providerID, cfg.Model, cfg.Telemetry, nil),
		EndWhenDone: true,
	}, func(ctx context.Context, span trace.Span) (*types.GenerateResult, error) {
		telemetry.AddSettingsAttributes(span, "llm.request", cfg.RequestSettings())
		body := BuildBody(cfg, messages, false, caps, hasCaps)
		if bodyTx != nil {
			body = bodyTx(body, cfg)
		}
		headers := BuildHeaders(cfg)
		if headerTx != nil {
			headers = headerTx(headers, cfg)
		}

		var resp chatResponse
		if err := sink.PostJSON(ctx, path, headers, body, &resp); err != nil {
			return nil, err
		}
		return convertResponse(resp, cfg.Model), nil
	})
}

// ChatStream performs one OpenAI-wire streaming completion (spec §4.G.4's
// simplified state machine, implemented fully in stream.go — the teacher's
// own streaming path never finishes this, see openAIStream.Next's
// `// TODO: Handle streaming tool calls`).
func ChatStream(ctx context.Context, sink transport.Sink, providerID, path string, cfg types.Config, messages []types.Message, caps ModelCaps, hasCaps bool, bodyTx BodyTransformer, headerTx HeaderTransformer) (<-chan types.StreamEvent, error) {
	tracer := telemetry.GetTracer(cfg.Telemetry)
	return telemetry.RecordSpan(ctx, tracer, telemetry.SpanOptions{
		Name:       providerID + ".chat_stream",
		Attributes: telemetry.GetBaseAttributes(providerID, cfg.Model, cfg.Telemetry, nil),
	}, func(ctx context.Context, span trace.Span) (<-chan types.StreamEvent, error) {
		telemetry.AddSettingsAttributes(span, "llm.request", cfg.RequestSettings())
		body := BuildBody(cfg, messages, true, caps, hasCaps)
		if bodyTx != nil {
			body = bodyTx(body, cfg)
		}
		headers := BuildHeaders(cfg)
		if headerTx != nil {
			headers = headerTx(headers, cfg)
		}

		sr, err := sink.PostSSE(ctx, path, headers, body)
		if err != nil {
			return nil, err
		}

		out := make(chan types.StreamEvent)
		stream := newStream(sr, cfg.Model)
		go func() {
			defer span.End()
			defer close(out)
			defer sr.Close()
			for {
				ev, terminal, emit := stream.step()
				if emit {
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
