package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListModelsAndModerateDelegateToCapabilitiesPackages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/models":
			json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{{"id": "gpt-4o"}}})
		case "/moderations":
			json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{{"flagged": false}}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := factory{}
	p, err := f.Create(types.Config{APIKey: "sk-x", Model: "gpt-4o", BaseURL: srv.URL})
	require.NoError(t, err)

	list, err := p.(*Provider).ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "gpt-4o", list[0].ID)

	results, err := p.(*Provider).Moderate(context.Background(), []string{"hi"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Flagged)
}
