// Package heuristic implements the coarse token-count fallback spec.md
// §4.G.5 describes for vendors that don't expose a dedicated counting
// endpoint: ceil(totalChars/4) over the serialized message/tool text. The
// teacher has no token counter at all (no file in the pack does this); this
// is implemented fresh directly from the spec's stated formula.
package heuristic

import (
	"encoding/json"

	"github.com/quillhq/llmkit/pkg/provider/types"
)

// CountTokens estimates token usage for messages and tools with
// ceil(totalChars/4), the fallback every non-Anthropic provider uses when
// it has no native counting endpoint.
func CountTokens(messages []types.Message, tools []types.Tool) int {
	chars := 0
	for _, m := range messages {
		chars += len(m.Role)
		chars += len(m.Name)
		for _, p := range m.Parts {
			chars += partChars(p)
		}
	}
	for _, t := range tools {
		chars += len(t.Function.Name) + len(t.Function.Description)
		if b, err := json.Marshal(t.Function.Parameters); err == nil {
			chars += len(b)
		}
	}
	return ceilDiv(chars, 4)
}

func partChars(p types.Part) int {
	switch p.Kind {
	case types.PartText:
		return len(p.Text)
	case types.PartImageURL:
		return len(p.URL)
	case types.PartImage:
		return len(p.ImageBytes) / 3 // base64 inflates ~4/3; approximate back
	case types.PartFile:
		return len(p.FileBytes) / 3
	case types.PartToolUse:
		n := 0
		for _, c := range p.ToolCalls {
			n += len(c.Function.Name) + len(c.Function.ArgumentsJSON)
		}
		return n
	case types.PartToolResult:
		n := 0
		for _, r := range p.ToolResults {
			n += len(r.Content)
		}
		return n
	default:
		return 0
	}
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
