package openaicompatible

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/quillhq/llmkit/pkg/providerutils/openaicompat"
	"github.com/quillhq/llmkit/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryRegisteredAsBuiltin(t *testing.T) {
	r := registry.Default()
	f, ok := r.GetFactory(ID)
	require.True(t, ok)
	assert.Equal(t, "OpenAI-compatible", f.DisplayName())
}

func TestValidateConfigRequiresBaseURLAndModel(t *testing.T) {
	f := factory{}
	require.Error(t, f.ValidateConfig(types.Config{}))
	require.Error(t, f.ValidateConfig(types.Config{BaseURL: "https://example.com"}))
	require.NoError(t, f.ValidateConfig(types.Config{BaseURL: "https://example.com", Model: "local-model"}))
}

// TestChatIsByteIdenticalToPlainBuildBody is the spec §8 conservative-
// generalization property test: a zero-transformer provider's request body
// must match openaicompat.BuildBody's output exactly.
func TestChatIsByteIdenticalToPlainBuildBody(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{{"message": map[string]any{"content": "hi"}}}})
	}))
	defer srv.Close()

	cfg := types.Config{Model: "local-model", BaseURL: srv.URL}
	messages := []types.Message{{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}}}

	f := factory{}
	p, err := f.Create(cfg)
	require.NoError(t, err)
	_, err = p.(*Provider).Chat(context.Background(), messages)
	require.NoError(t, err)

	want := openaicompat.BuildBody(cfg, messages, false, openaicompat.ModelCaps{}, false)
	gotJSON, _ := json.Marshal(captured)
	wantJSON, _ := json.Marshal(want)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))
}
