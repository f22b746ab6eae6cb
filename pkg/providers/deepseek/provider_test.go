package deepseek

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
	assert.Equal(t, "DeepSeek", f.DisplayName())
	assert.True(t, f.Capabilities().Has(types.CapReasoning))
}

func TestValidateConfigRequiresAPIKeyAndModel(t *testing.T) {
	f := factory{}
	require.Error(t, f.ValidateConfig(types.Config{}))
	require.NoError(t, f.ValidateConfig(types.Config{APIKey: "sk-x", Model: "deepseek-chat"}))
}

func TestReasonerModelSuppressesTemperature(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{{"message": map[string]any{"content": "hi"}}}})
	}))
	defer srv.Close()

	temp := 0.5
	f := factory{}
	cfg := types.Config{APIKey: "sk-x", Model: "deepseek-reasoner", BaseURL: srv.URL, Temperature: &temp}
	p, err := f.Create(cfg)
	require.NoError(t, err)

	_, err = p.(*Provider).Chat(context.Background(), []types.Message{
		{Role: types.RoleUser, Parts: []types.Part{types.TextPart("hi")}},
	})
	require.NoError(t, err)
	_, hasTemp := captured["temperature"]
	assert.False(t, hasTemp)
}
