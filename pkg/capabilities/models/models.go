// Package models implements the OpenAI-shaped model-listing endpoint
// (spec.md §4.I, CapModelListing).
package models

import (
	"context"

	"github.com/quillhq/llmkit/pkg/transport"
)

// ModelInfo describes one model a provider exposes.
type ModelInfo struct {
	ID      string
	Object  string
	OwnedBy string
	Created int64
}

// List returns every model the caller's credentials can use.
func List(ctx context.Context, sink transport.Sink) ([]ModelInfo, error) {
	var resp struct {
		Data []struct {
			ID      string `json:"id"`
			Object  string `json:"object"`
			OwnedBy string `json:"owned_by"`
			Created int64  `json:"created"`
		} `json:"data"`
	}
	if err := sink.GetJSON(ctx, "/models", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]ModelInfo, len(resp.Data))
	for i, m := range resp.Data {
		out[i] = ModelInfo{ID: m.ID, Object: m.Object, OwnedBy: m.OwnedBy, Created: m.Created}
	}
	return out, nil
}

// Get retrieves metadata for one model ID.
func Get(ctx context.Context, sink transport.Sink, id string) (*ModelInfo, error) {
	var m struct {
		ID      string `json:"id"`
		Object  string `json:"object"`
		OwnedBy string `json:"owned_by"`
		Created int64  `json:"created"`
	}
	if err := sink.GetJSON(ctx, "/models/"+id, nil, &m); err != nil {
		return nil, err
	}
	return &ModelInfo{ID: m.ID, Object: m.Object, OwnedBy: m.OwnedBy, Created: m.Created}, nil
}
