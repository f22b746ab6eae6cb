package types

import (
	"encoding/json"
	"fmt"

	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/telemetry"
)

// Config is the unified configuration carrier: typed common fields plus an
// open extension map for provider-specific options (spec.md §3/§4.C).
// Unknown extensions are preserved verbatim; a type assertion failure on
// read raises InvalidRequest at the call site, never at construction
// (spec §4.C contract).
type Config struct {
	APIKey        string
	BaseURL       string
	Model         string
	MaxTokens     *int
	Temperature   *float64
	SystemPrompt  string
	TimeoutMS     *int
	TopP          *float64
	TopK          *int
	Tools         []Tool
	ToolChoice    ToolChoice
	StopSequences []string
	User          string
	ServiceTier   string

	// Telemetry configures OpenTelemetry span emission for calls made with
	// this Config. Nil behaves like telemetry.DefaultSettings() (disabled).
	Telemetry *telemetry.Settings

	Extensions map[string]any
}

// WithExtension returns a copy of c with key k set to v in Extensions.
func (c Config) WithExtension(k string, v any) Config {
	out := c.CopyWith()
	if out.Extensions == nil {
		out.Extensions = map[string]any{}
	}
	out.Extensions[k] = v
	return out
}

// WithExtensions merges m into a copy of c's Extensions (m wins on conflict).
func (c Config) WithExtensions(m map[string]any) Config {
	out := c.CopyWith()
	if out.Extensions == nil {
		out.Extensions = map[string]any{}
	}
	for k, v := range m {
		out.Extensions[k] = v
	}
	return out
}

// CopyWith returns a shallow, independent copy of c — mutating the result's
// maps/slices never mutates c's.
func (c Config) CopyWith() Config {
	out := c
	if c.Extensions != nil {
		out.Extensions = make(map[string]any, len(c.Extensions))
		for k, v := range c.Extensions {
			out.Extensions[k] = v
		}
	}
	if c.Tools != nil {
		out.Tools = append([]Tool(nil), c.Tools...)
	}
	if c.StopSequences != nil {
		out.StopSequences = append([]string(nil), c.StopSequences...)
	}
	return out
}

// RequestSettings flattens the typed call settings into the
// map[string]any shape telemetry.AddSettingsAttributes expects, so a
// provider span can carry the request's model, limits, and sampling
// parameters without each vendor package re-deriving the same map.
func (c Config) RequestSettings() map[string]any {
	settings := map[string]any{"model": c.Model}
	if c.MaxTokens != nil {
		settings["maxTokens"] = *c.MaxTokens
	}
	if c.Temperature != nil {
		settings["temperature"] = *c.Temperature
	}
	if c.TopP != nil {
		settings["topP"] = *c.TopP
	}
	if c.TopK != nil {
		settings["topK"] = *c.TopK
	}
	if c.ServiceTier != "" {
		settings["serviceTier"] = c.ServiceTier
	}
	return settings
}

// HasExtension reports whether key k is present in Extensions.
func (c Config) HasExtension(k string) bool {
	if c.Extensions == nil {
		return false
	}
	_, ok := c.Extensions[k]
	return ok
}

// GetExtension fetches key k typed as T. A missing key returns the zero
// value and false, never an error (construction-time is never where typed
// reads fail). A present key of the wrong type returns an InvalidRequest
// LLMError, per spec §4.C's "type assertion errors on read raise
// InvalidRequest at call site, never at construction" contract.
func GetExtension[T any](c Config, k string) (T, bool, error) {
	var zero T
	if c.Extensions == nil {
		return zero, false, nil
	}
	raw, ok := c.Extensions[k]
	if !ok {
		return zero, false, nil
	}
	v, ok := raw.(T)
	if !ok {
		return zero, true, llmerrors.New(llmerrors.KindInvalidRequest,
			fmt.Sprintf("extension %q is not of the expected type", k))
	}
	return v, true, nil
}

// configJSON is the wire shape for Config.ToJSON/FromJSON.
type configJSON struct {
	APIKey        string         `json:"apiKey,omitempty"`
	BaseURL       string         `json:"baseUrl"`
	Model         string         `json:"model"`
	MaxTokens     *int           `json:"maxTokens,omitempty"`
	Temperature   *float64       `json:"temperature,omitempty"`
	SystemPrompt  string         `json:"systemPrompt,omitempty"`
	TimeoutMS     *int           `json:"timeoutMs,omitempty"`
	TopP          *float64       `json:"topP,omitempty"`
	TopK          *int           `json:"topK,omitempty"`
	StopSequences []string       `json:"stopSequences,omitempty"`
	User          string         `json:"user,omitempty"`
	ServiceTier   string         `json:"serviceTier,omitempty"`
	Extensions    map[string]any `json:"extensions,omitempty"`
}

// ToJSON serializes the caller-persistable subset of Config (spec §6.5:
// "Callers may persist Config.toJSON() safely"). Tools/ToolChoice are
// request-shape, not carrier state, and are intentionally excluded.
func (c Config) ToJSON() ([]byte, error) {
	return json.Marshal(configJSON{
		APIKey: c.APIKey, BaseURL: c.BaseURL, Model: c.Model, MaxTokens: c.MaxTokens,
		Temperature: c.Temperature, SystemPrompt: c.SystemPrompt, TimeoutMS: c.TimeoutMS,
		TopP: c.TopP, TopK: c.TopK, StopSequences: c.StopSequences, User: c.User,
		ServiceTier: c.ServiceTier, Extensions: c.Extensions,
	})
}

func ConfigFromJSON(data []byte) (Config, error) {
	var j configJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return Config{}, err
	}
	return Config{
		APIKey: j.APIKey, BaseURL: j.BaseURL, Model: j.Model, MaxTokens: j.MaxTokens,
		Temperature: j.Temperature, SystemPrompt: j.SystemPrompt, TimeoutMS: j.TimeoutMS,
		TopP: j.TopP, TopK: j.TopK, StopSequences: j.StopSequences, User: j.User,
		ServiceTier: j.ServiceTier, Extensions: j.Extensions,
	}, nil
}
