// Package assistants implements the OpenAI-shaped Assistants CRUD
// endpoints (spec.md §4.I, CapAssistants).
package assistants

import (
	"context"

	"github.com/quillhq/llmkit/pkg/transport"
)

// Assistant is a configured assistant definition.
type Assistant struct {
	ID           string           `json:"id"`
	Object       string           `json:"object"`
	Model        string           `json:"model"`
	Name         string           `json:"name"`
	Instructions string           `json:"instructions"`
	Tools        []map[string]any `json:"tools"`
	CreatedAt    int64            `json:"created_at"`
}

// CreateRequest is the request shape for Create.
type CreateRequest struct {
	Model        string
	Name         string
	Instructions string
	Tools        []map[string]any
}

func Create(ctx context.Context, sink transport.Sink, req CreateRequest) (*Assistant, error) {
	body := map[string]any{"model": req.Model}
	if req.Name != "" {
		body["name"] = req.Name
	}
	if req.Instructions != "" {
		body["instructions"] = req.Instructions
	}
	if len(req.Tools) > 0 {
		body["tools"] = req.Tools
	}
	var a Assistant
	if err := sink.PostJSON(ctx, "/assistants", nil, body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func Get(ctx context.Context, sink transport.Sink, id string) (*Assistant, error) {
	var a Assistant
	if err := sink.GetJSON(ctx, "/assistants/"+id, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func List(ctx context.Context, sink transport.Sink) ([]Assistant, error) {
	var resp struct {
		Data []Assistant `json:"data"`
	}
	if err := sink.GetJSON(ctx, "/assistants", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func Delete(ctx context.Context, sink transport.Sink, id string) error {
	return sink.Delete(ctx, "/assistants/"+id, nil)
}
