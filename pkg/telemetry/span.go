package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanOptions configures one telemetry span.
type SpanOptions struct {
	Name        string
	Attributes  []attribute.KeyValue
	EndWhenDone bool
}

// RecordSpan starts a span, runs fn, and records any returned error on the
// span before propagating it. The span ends automatically on error; on
// success it ends only if EndWhenDone is set, letting a streaming caller
// keep the span open across multiple chunks and close it itself.
func RecordSpan[T any](
	ctx context.Context,
	tracer trace.Tracer,
	opts SpanOptions,
	fn func(context.Context, trace.Span) (T, error),
) (T, error) {
	ctx, span := tracer.Start(ctx, opts.Name, trace.WithAttributes(opts.Attributes...))

	result, err := fn(ctx, span)
	if err != nil {
		RecordErrorOnSpan(span, err)
		span.End()
		var zero T
		return zero, err
	}

	if opts.EndWhenDone {
		span.End()
	}
	return result, nil
}

// RecordErrorOnSpan records err on span and marks the span's status Error.
func RecordErrorOnSpan(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// scrubbedHeaders never get turned into span attributes.
var scrubbedHeaders = map[string]bool{
	"Authorization": true,
	"x-api-key":     true,
	"api-key":       true,
}

// GetBaseAttributes returns the common attribute set for a provider call,
// scrubbing credential-bearing headers.
func GetBaseAttributes(provider, modelID string, settings *Settings, headers map[string]string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("llm.provider", provider),
		attribute.String("llm.model.id", modelID),
	}

	if settings != nil {
		if settings.FunctionID != "" {
			attrs = append(attrs, attribute.String("llm.telemetry.functionId", settings.FunctionID))
		}
		for k, v := range settings.Metadata {
			attrs = append(attrs, attribute.KeyValue{Key: attribute.Key("llm.telemetry.metadata." + k), Value: v})
		}
	}

	for k, v := range headers {
		if scrubbedHeaders[k] {
			continue
		}
		attrs = append(attrs, attribute.String("llm.request.headers."+k, v))
	}

	return attrs
}

// AddSettingsAttributes adds a flat map of request settings to span as
// prefixed attributes, one type-switch branch per attribute.KeyValue kind
// OpenTelemetry supports natively.
func AddSettingsAttributes(span trace.Span, prefix string, settings map[string]any) {
	for key, value := range settings {
		attrKey := prefix + "." + key
		switch v := value.(type) {
		case string:
			span.SetAttributes(attribute.String(attrKey, v))
		case int:
			span.SetAttributes(attribute.Int(attrKey, v))
		case int64:
			span.SetAttributes(attribute.Int64(attrKey, v))
		case float64:
			span.SetAttributes(attribute.Float64(attrKey, v))
		case bool:
			span.SetAttributes(attribute.Bool(attrKey, v))
		}
	}
}
