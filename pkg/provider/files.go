package provider

import (
	"context"

	"github.com/quillhq/llmkit/pkg/capabilities/files"
	"github.com/quillhq/llmkit/pkg/registry"
)

// FileManager is the capability surface a provider advertising
// CapFileManagement implements (spec.md §4.I). Vendors whose file wire
// shape matches OpenAI's can satisfy this by delegating to
// capabilities/files directly; vendors with a divergent shape (Anthropic)
// implement it natively and translate into the shared files.FileObject.
type FileManager interface {
	registry.Provider

	UploadFile(ctx context.Context, filename string, data []byte) (*files.FileObject, error)
	ListFiles(ctx context.Context) ([]files.FileObject, error)
	GetFile(ctx context.Context, id string) (*files.FileObject, error)
	DeleteFile(ctx context.Context, id string) error
	FileContent(ctx context.Context, id string) ([]byte, error)
}
