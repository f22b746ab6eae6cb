package openai

import "github.com/quillhq/llmkit/pkg/providerutils/openaicompat"

// modelCapabilities gates reasoning models' rejection of temperature/top_p
// and narrower context windows, grounded on the teacher's per-model
// SupportsImageInput-style switch in language_model.go, generalized into a
// data table per SPEC_FULL.md §4.H.
var modelCapabilities = openaicompat.ModelCapabilityTable{
	"o1": {
		SupportsReasoning: true, SupportsVision: true, SupportsToolCalling: true,
		MaxContextLength: 200000, DisableTemperature: true, DisableTopP: true,
		ReasoningEffortMap: map[string]string{"low": "low", "medium": "medium", "high": "high"},
	},
	"o1-mini": {
		SupportsReasoning: true, SupportsToolCalling: false,
		MaxContextLength: 128000, DisableTemperature: true, DisableTopP: true,
	},
	"o3": {
		SupportsReasoning: true, SupportsVision: true, SupportsToolCalling: true,
		MaxContextLength: 200000, DisableTemperature: true, DisableTopP: true,
		ReasoningEffortMap: map[string]string{"low": "low", "medium": "medium", "high": "high"},
	},
	"o3-mini": {
		SupportsReasoning: true, SupportsToolCalling: true,
		MaxContextLength: 200000, DisableTemperature: true, DisableTopP: true,
		ReasoningEffortMap: map[string]string{"low": "low", "medium": "medium", "high": "high"},
	},
	"o4-mini": {
		SupportsReasoning: true, SupportsVision: true, SupportsToolCalling: true,
		MaxContextLength: 200000, DisableTemperature: true, DisableTopP: true,
	},
	"gpt-4o": {
		SupportsVision: true, SupportsToolCalling: true, MaxContextLength: 128000,
	},
	"gpt-4o-mini": {
		SupportsVision: true, SupportsToolCalling: true, MaxContextLength: 128000,
	},
	"gpt-4-turbo": {
		SupportsVision: true, SupportsToolCalling: true, MaxContextLength: 128000,
	},
}
