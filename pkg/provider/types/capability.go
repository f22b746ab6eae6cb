package types

// Capability is an advertised feature of a provider (spec.md §3). Providers
// may advertise a superset of what every one of their models supports;
// runtime fallback with a warning is expected rather than a hard failure
// (spec §9 Open Questions).
type Capability string

const (
	CapChat                  Capability = "chat"
	CapStreaming              Capability = "streaming"
	CapEmbedding              Capability = "embedding"
	CapTextToSpeech           Capability = "textToSpeech"
	CapStreamingTextToSpeech  Capability = "streamingTextToSpeech"
	CapSpeechToText           Capability = "speechToText"
	CapAudioTranslation       Capability = "audioTranslation"
	CapRealtimeAudio          Capability = "realtimeAudio"
	CapModelListing           Capability = "modelListing"
	CapToolCalling            Capability = "toolCalling"
	CapReasoning              Capability = "reasoning"
	CapVision                 Capability = "vision"
	CapCompletion             Capability = "completion"
	CapImageGeneration        Capability = "imageGeneration"
	CapFileManagement         Capability = "fileManagement"
	CapModeration             Capability = "moderation"
	CapAssistants             Capability = "assistants"
	CapLiveSearch             Capability = "liveSearch"
)

// AllCapabilities lists every known capability, useful for exhaustiveness
// checks in tests.
var AllCapabilities = []Capability{
	CapChat, CapStreaming, CapEmbedding, CapTextToSpeech, CapStreamingTextToSpeech,
	CapSpeechToText, CapAudioTranslation, CapRealtimeAudio, CapModelListing,
	CapToolCalling, CapReasoning, CapVision, CapCompletion, CapImageGeneration,
	CapFileManagement, CapModeration, CapAssistants, CapLiveSearch,
}

// CapabilitySet is a small helper around a capability -> bool map.
type CapabilitySet map[Capability]bool

func (c CapabilitySet) Has(cap Capability) bool { return c[cap] }
