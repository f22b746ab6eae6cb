package xai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryRegisteredAsBuiltin(t *testing.T) {
	r := registry.Default()
	f, ok := r.GetFactory(ID)
	require.True(t, ok)
	assert.True(t, f.Capabilities().Has(types.CapLiveSearch))
}

func TestSearchTransformerNoopWithoutExtension(t *testing.T) {
	body := SearchTransformer(map[string]any{"model": "grok-3"}, types.Config{})
	_, ok := body["search_parameters"]
	assert.False(t, ok)
}

func TestSearchTransformerMapsWebSearchConfig(t *testing.T) {
	cfg := types.Config{}.WithExtension("webSearchConfig", map[string]any{
		"mode":               "auto",
		"from_date":          "2026-01-01",
		"max_search_results": 5,
		"excluded_websites":  []string{"example.com"},
	})
	body := SearchTransformer(map[string]any{}, cfg)
	params := body["search_parameters"].(map[string]any)
	assert.Equal(t, "auto", params["mode"])
	assert.Equal(t, 5, params["max_search_results"])
	sources := params["sources"].([]map[string]any)
	assert.Equal(t, []string{"example.com"}, sources[0]["excluded_websites"])
}

func TestChatSendsSearchParameters(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{{"message": map[string]any{"content": "hi"}}}})
	}))
	defer srv.Close()

	f := factory{}
	cfg := types.Config{APIKey: "sk-x", Model: "grok-3", BaseURL: srv.URL}.
		WithExtension("webSearchConfig", map[string]any{"mode": "on"})
	p, err := f.Create(cfg)
	require.NoError(t, err)

	_, err = p.(*Provider).Chat(context.Background(), []types.Message{
		{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}},
	})
	require.NoError(t, err)
	require.NotNil(t, captured["search_parameters"])
}
