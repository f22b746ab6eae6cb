// Package files implements the OpenAI-shaped file-management endpoints
// (spec.md §4.I): upload, list, retrieve, delete, and download content.
// It is vendor-agnostic — it operates on any transport.Sink pointed at a
// base URL exposing the same wire shape, grounded on the teacher's
// multipart-upload convention in providers/openai/transcription_model.go.
package files

import (
	"context"

	"github.com/quillhq/llmkit/pkg/transport"
)

// FileObject consolidates OpenAI's two divergent list-response shapes
// (flat array for /v1/files, cursor-paginated for Assistants-purpose
// listings) per DESIGN.md's Open Question resolution: every field either
// hierarchy uses is present, and Origin records which vendor produced it.
// FileObject is only decoded from wire responses; this package has no
// serializer that turns it back into a vendor's wire JSON.
type FileObject struct {
	ID        string
	Object    string
	Bytes     int64
	CreatedAt int64
	Filename  string
	Purpose   string
	Origin    string // "openai" or "anthropic"

	// Cursor-style pagination metadata (Assistants-purpose file lists).
	FirstID string
	LastID  string
	HasMore bool

	// Offset-style pagination metadata (plain /v1/files list).
	Total  int
	Limit  int
	Offset int
}

type fileWireObject struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
}

func (w fileWireObject) toFileObject(origin string) FileObject {
	return FileObject{
		ID: w.ID, Object: w.Object, Bytes: w.Bytes, CreatedAt: w.CreatedAt,
		Filename: w.Filename, Purpose: w.Purpose, Origin: origin,
	}
}

// Upload sends file content with the given purpose ("fine-tune",
// "assistants", "batch", ...) and returns the stored FileObject.
func Upload(ctx context.Context, sink transport.Sink, filename string, data []byte, purpose string) (*FileObject, error) {
	fields := []transport.FormField{
		{Name: "file", FileName: filename, Data: data},
		{Name: "purpose", Value: purpose},
	}
	var resp fileWireObject
	if err := sink.PostForm(ctx, "/files", nil, fields, &resp); err != nil {
		return nil, err
	}
	obj := resp.toFileObject("openai")
	return &obj, nil
}

// List returns every file visible to the caller's API key.
func List(ctx context.Context, sink transport.Sink) ([]FileObject, error) {
	var resp struct {
		Data    []fileWireObject `json:"data"`
		Object  string           `json:"object"`
		FirstID string           `json:"first_id"`
		LastID  string           `json:"last_id"`
		HasMore bool             `json:"has_more"`
	}
	if err := sink.GetJSON(ctx, "/files", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]FileObject, len(resp.Data))
	for i, w := range resp.Data {
		f := w.toFileObject("openai")
		f.FirstID, f.LastID, f.HasMore = resp.FirstID, resp.LastID, resp.HasMore
		f.Total = len(resp.Data)
		out[i] = f
	}
	return out, nil
}

// Get retrieves metadata for one file ID.
func Get(ctx context.Context, sink transport.Sink, id string) (*FileObject, error) {
	var resp fileWireObject
	if err := sink.GetJSON(ctx, "/files/"+id, nil, &resp); err != nil {
		return nil, err
	}
	obj := resp.toFileObject("openai")
	return &obj, nil
}

// Delete removes a file by ID.
func Delete(ctx context.Context, sink transport.Sink, id string) error {
	return sink.Delete(ctx, "/files/"+id, nil)
}

// Content downloads a file's raw bytes.
func Content(ctx context.Context, sink transport.Sink, id string) ([]byte, error) {
	return sink.GetBytes(ctx, "/files/"+id+"/content", nil)
}
