// Package telemetry provides OpenTelemetry integration for the client
// library. It tracks chat, embedding, and streaming operations with
// customizable spans and attributes. Telemetry is opt-in: callers own
// exporter wiring, this package only emits spans against whatever
// TracerProvider is globally configured (or a caller-supplied Tracer).
package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Settings configures telemetry for one provider call. Disabled by default.
type Settings struct {
	// IsEnabled controls whether telemetry is active. Defaults to false.
	IsEnabled bool

	// RecordInputs controls whether prompt/message content is recorded on
	// spans. Defaults to true when telemetry is enabled — disable to avoid
	// recording sensitive content or to reduce span size.
	RecordInputs bool

	// RecordOutputs controls whether generated text/tool-call content is
	// recorded on spans. Defaults to true when telemetry is enabled.
	RecordOutputs bool

	// FunctionID groups telemetry data by caller-defined operation name.
	FunctionID string

	// Metadata is additional key-value pairs attached to every span.
	Metadata map[string]attribute.Value

	// Tracer overrides the tracer used. If nil, the global tracer is used.
	Tracer trace.Tracer
}

// DefaultSettings returns Settings with telemetry disabled and recording
// defaults set for when a caller turns it on.
func DefaultSettings() *Settings {
	return &Settings{
		IsEnabled:     false,
		RecordInputs:  true,
		RecordOutputs: true,
		Metadata:      make(map[string]attribute.Value),
	}
}

func (s *Settings) WithEnabled(enabled bool) *Settings {
	c := *s
	c.IsEnabled = enabled
	return &c
}

func (s *Settings) WithRecordInputs(record bool) *Settings {
	c := *s
	c.RecordInputs = record
	return &c
}

func (s *Settings) WithRecordOutputs(record bool) *Settings {
	c := *s
	c.RecordOutputs = record
	return &c
}

func (s *Settings) WithFunctionID(id string) *Settings {
	c := *s
	c.FunctionID = id
	return &c
}

func (s *Settings) WithMetadata(metadata map[string]attribute.Value) *Settings {
	c := *s
	c.Metadata = make(map[string]attribute.Value, len(s.Metadata)+len(metadata))
	for k, v := range s.Metadata {
		c.Metadata[k] = v
	}
	for k, v := range metadata {
		c.Metadata[k] = v
	}
	return &c
}

func (s *Settings) WithTracer(tracer trace.Tracer) *Settings {
	c := *s
	c.Tracer = tracer
	return &c
}
