package anthropic

import (
	"context"

	"github.com/quillhq/llmkit/pkg/capabilities/files"
	"github.com/quillhq/llmkit/pkg/transport"
)

type anthropicFileObject struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Filename     string `json:"filename"`
	MimeType     string `json:"mime_type"`
	SizeBytes    int64  `json:"size_bytes"`
	CreatedAt    string `json:"created_at"`
	Downloadable bool   `json:"downloadable"`
}

func (w anthropicFileObject) toFileObject() files.FileObject {
	return files.FileObject{
		ID: w.ID, Object: w.Type, Bytes: w.SizeBytes,
		Filename: w.Filename, Origin: "anthropic",
	}
}

func (p *Provider) filesHeaders() map[string]string {
	return map[string]string{"anthropic-beta": betaHeaders(p.cfg, true)}
}

// UploadFile implements the file-management side of CapFileManagement,
// grounded on the teacher's beta-header composition (betaHeaders) and the
// shared files.FileObject shape (pkg/capabilities/files) — Anthropic's
// Files API diverges from OpenAI's field names (size_bytes/mime_type vs
// bytes/purpose) so the wire struct is kept local instead of reusing
// capabilities/files' OpenAI-shaped one.
func (p *Provider) UploadFile(ctx context.Context, filename string, data []byte) (*files.FileObject, error) {
	fields := []transport.FormField{{Name: "file", FileName: filename, Data: data}}
	var resp anthropicFileObject
	if err := p.sink.PostForm(ctx, "/v1/files", p.filesHeaders(), fields, &resp); err != nil {
		return nil, err
	}
	obj := resp.toFileObject()
	return &obj, nil
}

func (p *Provider) ListFiles(ctx context.Context) ([]files.FileObject, error) {
	var resp struct {
		Data    []anthropicFileObject `json:"data"`
		HasMore bool                  `json:"has_more"`
		FirstID string                `json:"first_id"`
		LastID  string                `json:"last_id"`
	}
	if err := p.sink.GetJSON(ctx, "/v1/files", p.filesHeaders(), &resp); err != nil {
		return nil, err
	}
	out := make([]files.FileObject, len(resp.Data))
	for i, w := range resp.Data {
		f := w.toFileObject()
		f.HasMore, f.FirstID, f.LastID = resp.HasMore, resp.FirstID, resp.LastID
		out[i] = f
	}
	return out, nil
}

func (p *Provider) GetFile(ctx context.Context, id string) (*files.FileObject, error) {
	var resp anthropicFileObject
	if err := p.sink.GetJSON(ctx, "/v1/files/"+id, p.filesHeaders(), &resp); err != nil {
		return nil, err
	}
	obj := resp.toFileObject()
	return &obj, nil
}

func (p *Provider) DeleteFile(ctx context.Context, id string) error {
	return p.sink.Delete(ctx, "/v1/files/"+id, p.filesHeaders())
}

func (p *Provider) FileContent(ctx context.Context, id string) ([]byte, error) {
	return p.sink.GetBytes(ctx, "/v1/files/"+id+"/content", p.filesHeaders())
}
