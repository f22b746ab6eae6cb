package models

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillhq/llmkit/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAndGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/models" {
			json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{"id": "gpt-4o", "owned_by": "openai"}}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "gpt-4o", "owned_by": "openai"})
	}))
	defer srv.Close()
	sink := transport.NewClient(transport.Config{BaseURL: srv.URL})

	list, err := List(context.Background(), sink)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "gpt-4o", list[0].ID)

	m, err := Get(context.Background(), sink, "gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "openai", m.OwnedBy)
}
