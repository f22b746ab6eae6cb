// Package types is the shared data model: messages, tools, usage, config,
// and stream events. Every sum type here (Part, ToolChoice, StreamEvent) is
// realized as a struct with a Kind discriminator rather than an interface,
// so callers get a compiler-checkable switch instead of a type assertion.
package types

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// PartKind discriminates the closed set of Message content parts.
type PartKind string

const (
	PartText       PartKind = "text"
	PartImage      PartKind = "image"
	PartImageURL   PartKind = "image_url"
	PartFile       PartKind = "file"
	PartToolUse    PartKind = "tool_use"
	PartToolResult PartKind = "tool_result"
)

// ImageMime is the closed set of image MIME types spec.md §3 names.
type ImageMime string

const (
	ImageJPEG ImageMime = "image/jpeg"
	ImagePNG  ImageMime = "image/png"
	ImageGIF  ImageMime = "image/gif"
	ImageWebP ImageMime = "image/webp"
)

// ToolResultItem is one entry of a ToolResult part.
type ToolResultItem struct {
	ToolCallID string
	Content    string
	IsError    bool
}

// Part is a tagged union over Message content. Exactly the fields matching
// Kind are populated; others are zero.
type Part struct {
	Kind PartKind

	// PartText
	Text string

	// PartImage
	ImageMimeType ImageMime
	ImageBytes    []byte

	// PartImageURL
	URL string

	// PartFile
	FileMimeType string
	FileBytes    []byte
	FileName     string

	// PartToolUse
	ToolCalls []ToolCall

	// PartToolResult
	ToolResults []ToolResultItem
}

func TextPart(s string) Part { return Part{Kind: PartText, Text: s} }

func ImagePart(mime ImageMime, data []byte) Part {
	return Part{Kind: PartImage, ImageMimeType: mime, ImageBytes: data}
}

func ImageURLPart(url string) Part { return Part{Kind: PartImageURL, URL: url} }

func FilePart(mime string, data []byte) Part {
	return Part{Kind: PartFile, FileMimeType: mime, FileBytes: data}
}

func ToolUsePart(calls ...ToolCall) Part {
	return Part{Kind: PartToolUse, ToolCalls: calls}
}

func ToolResultPart(items ...ToolResultItem) Part {
	return Part{Kind: PartToolResult, ToolResults: items}
}

// Message is one turn of a conversation.
type Message struct {
	Role  Role
	Parts []Part
	Name  string
}

// Text returns the first PartText's content, or "" if none.
func (m Message) Text() string {
	for _, p := range m.Parts {
		if p.Kind == PartText {
			return p.Text
		}
	}
	return ""
}

// IsEffectivelyEmpty reports whether a message carries no meaningful
// content — used by the Anthropic body builder's InvalidRequest check
// (spec §4.G.1).
func (m Message) IsEffectivelyEmpty() bool {
	if len(m.Parts) == 0 {
		return true
	}
	for _, p := range m.Parts {
		switch p.Kind {
		case PartText:
			if p.Text != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Prompt is either a simple text prompt or a list of messages, with an
// optional system string — mirrors the teacher's Prompt shape.
type Prompt struct {
	Messages []Message
	System   string
	Text     string
}

func (p Prompt) IsSimple() bool   { return p.Text != "" && len(p.Messages) == 0 }
func (p Prompt) IsMessages() bool { return len(p.Messages) > 0 }
