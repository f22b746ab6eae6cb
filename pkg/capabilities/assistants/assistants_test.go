package assistants

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

func newSink(t *testing.T, handler http.HandlerFunc) transport.Sink {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return transport.NewClient(transport.Config{BaseURL: srv.URL})
}

func TestCreateGetListDelete(t *testing.T) {
	deleted := false
	sink := newSink(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/assistants":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "gpt-4o", body["model"])
			json.NewEncoder(w).Encode(map[string]any{"id": "asst_1", "model": "gpt-4o", "created_at": 1700000000})
		case r.Method == http.MethodGet && r.URL.Path == "/assistants/asst_1":
			json.NewEncoder(w).Encode(map[string]any{"id": "asst_1", "model": "gpt-4o", "created_at": 1700000000})
		case r.Method == http.MethodGet && r.URL.Path == "/assistants":
			json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{"id": "asst_1"}}})
		case r.Method == http.MethodDelete && r.URL.Path == "/assistants/asst_1":
			deleted = true
			json.NewEncoder(w).Encode(map[string]any{"id": "asst_1", "deleted": true})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	created, err := Create(context.Background(), sink, CreateRequest{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "asst_1", created.ID)
	assert.EqualValues(t, 1700000000, created.CreatedAt)

	got, err := Get(context.Background(), sink, "asst_1")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", got.Model)

	list, err := List(context.Background(), sink)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "asst_1", list[0].ID)

	require.NoError(t, Delete(context.Background(), sink, "asst_1"))
	assert.True(t, deleted)
}
