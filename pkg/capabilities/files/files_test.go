package files

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

func TestUploadRoundTrip(t *testing.T) {
	var gotPurpose string
	sink := newSink(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		gotPurpose = r.FormValue("purpose")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "file-1", "object": "file", "bytes": 10, "filename": "a.txt", "purpose": "assistants"})
	})

	f, err := Upload(context.Background(), sink, "a.txt", []byte("0123456789"), "assistants")
	require.NoError(t, err)
	assert.Equal(t, "assistants", gotPurpose)
	assert.Equal(t, "file-1", f.ID)
	assert.Equal(t, "openai", f.Origin)
}

func TestListPreservesCursorAndCount(t *testing.T) {
	sink := newSink(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data":     []map[string]any{{"id": "file-1"}, {"id": "file-2"}},
			"first_id": "file-1", "last_id": "file-2", "has_more": false,
		})
	})

	list, err := List(context.Background(), sink)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "file-1", list[0].FirstID)
	assert.Equal(t, 2, list[0].Total)
}

func TestDeleteAndContent(t *testing.T) {
	sink := newSink(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Write([]byte("raw-bytes"))
	})
	require.NoError(t, Delete(context.Background(), sink, "file-1"))
	data, err := Content(context.Background(), sink, "file-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("raw-bytes"), data)
}
