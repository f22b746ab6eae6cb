// Package transport defines the abstract Sink interface the core depends
// on for all network I/O (spec.md §4.D), plus its net/http-backed
// implementation. No layer above transport ever imports net/http directly
// (spec §9: "do not leak any specific HTTP client into the chat translator
// layer").
package transport

import "context"

// FormField is one part of a multipart/form-data request.
type FormField struct {
	Name     string
	Value    string // set for plain fields
	FileName string // set (with Data) for file parts
	Data     []byte
	MimeType string
}

// StreamChunk is one UTF-8-safe text fragment of an SSE response body.
type StreamChunk struct {
	Data string
}

// StreamReader yields decoded SSE text chunks, finite, closing on server
// EOF or context cancellation (spec §4.D).
type StreamReader interface {
	// Next blocks until the next chunk is available, returns io.EOF when
	// the stream ends cleanly.
	Next() (StreamChunk, error)
	Close() error
}

// Sink is the abstract transport the translation pipeline depends on.
// Timeouts are applied per call; cancellation propagates to in-flight
// requests and promptly closes SSE streams (spec §4.D, §5).
type Sink interface {
	PostJSON(ctx context.Context, path string, headers map[string]string, body any, out any) error
	GetJSON(ctx context.Context, path string, headers map[string]string, out any) error
	PostForm(ctx context.Context, path string, headers map[string]string, fields []FormField, out any) error
	GetBytes(ctx context.Context, path string, headers map[string]string) ([]byte, error)
	// PostBytes sends a JSON body and returns the raw response body,
	// grounded on the teacher's internal/http.Client.Post — used by
	// binary-response endpoints like text-to-speech that don't reply
	// with a JSON envelope.
	PostBytes(ctx context.Context, path string, headers map[string]string, body any) ([]byte, error)
	Delete(ctx context.Context, path string, headers map[string]string) error
	PostSSE(ctx context.Context, path string, headers map[string]string, body any) (StreamReader, error)
}
