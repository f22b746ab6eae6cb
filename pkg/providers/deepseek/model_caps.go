package deepseek

import "github.com/quillhq/llmkit/pkg/providerutils/openaicompat"

// modelCapabilities distinguishes deepseek-reasoner, which rejects
// temperature/top_p and exposes a reasoning_effort-free thinking mode, from
// deepseek-chat, which behaves like a conventional chat model.
var modelCapabilities = openaicompat.ModelCapabilityTable{
	"deepseek-chat": {
		SupportsToolCalling: true,
		MaxContextLength:    64000,
	},
	"deepseek-reasoner": {
		SupportsReasoning:  true,
		DisableTemperature: true,
		DisableTopP:        true,
		MaxContextLength:   64000,
	},
}
