package ollama

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
	assert.Equal(t, "Ollama", f.DisplayName())
}

func TestValidateConfigDoesNotRequireAPIKey(t *testing.T) {
	f := factory{}
	require.NoError(t, f.ValidateConfig(types.Config{Model: "llama2"}))
	require.Error(t, f.ValidateConfig(types.Config{}))
}

func TestCreateDefaultsModelAndOmitsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{{"message": map[string]any{"content": "hi"}}}})
	}))
	defer srv.Close()

	f := factory{}
	p, err := f.Create(types.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, p.(*Provider).modelID)

	_, err = p.(*Provider).Chat(context.Background(), []types.Message{
		{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}},
	})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}
