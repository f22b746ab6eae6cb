// Package provider declares the capability interfaces a concrete
// providers/<vendor> package implements on top of registry.Provider, plus
// a small shared helper the per-vendor chat translators all use to parse
// a transport.StreamReader through sse.FrameReader.
package provider

import (
	"context"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/registry"
)

// ChatModel is the capability surface every chat-capable provider handle
// implements (spec.md §4.F/§4.G). A provider advertising CapChat and/or
// CapStreaming from its Factory.Capabilities() satisfies this interface.
type ChatModel interface {
	registry.Provider

	// Chat performs one non-streaming completion.
	Chat(ctx context.Context, messages []types.Message) (*types.GenerateResult, error)

	// ChatStream performs one streaming completion. The returned channel is
	// closed after exactly one terminal event (Completion or Error) has been
	// sent (spec §3 invariant, §8 testable property).
	ChatStream(ctx context.Context, messages []types.Message) (<-chan types.StreamEvent, error)

	// CountTokens estimates usage for messages without making a generation
	// call, using a vendor endpoint when one exists or the heuristic
	// fallback otherwise (spec §4.G.5).
	CountTokens(ctx context.Context, messages []types.Message) (int, error)
}
