package anthropic

import (
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
	assert.Equal(t, "Anthropic", f.DisplayName())
	assert.True(t, f.Capabilities().Has(types.CapChat))
	assert.True(t, f.Capabilities().Has(types.CapStreaming))
	assert.True(t, f.Capabilities().Has(types.CapToolCalling))
	assert.True(t, f.Capabilities().Has(types.CapReasoning))
	assert.False(t, f.Capabilities().Has(types.CapEmbedding))
}

func TestValidateConfigRequiresAPIKeyAndModel(t *testing.T) {
	f := factory{}
	err := f.ValidateConfig(types.Config{})
	require.Error(t, err)

	err = f.ValidateConfig(types.Config{APIKey: "sk-x"})
	require.Error(t, err)

	err = f.ValidateConfig(types.Config{APIKey: "sk-x", Model: "claude-3-5-sonnet-latest"})
	require.NoError(t, err)
}

func TestCreateDefaultsBaseURL(t *testing.T) {
	f := factory{}
	p, err := f.Create(types.Config{APIKey: "sk-x", Model: "claude-3-5-sonnet-latest"})
	require.NoError(t, err)
	assert.Equal(t, ID, p.ID())
}
