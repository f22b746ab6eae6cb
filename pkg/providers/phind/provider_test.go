package phind

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
	assert.Equal(t, "Phind", f.DisplayName())
}

func TestValidateConfigRequiresAPIKeyAndModel(t *testing.T) {
	f := factory{}
	require.Error(t, f.ValidateConfig(types.Config{}))
	require.NoError(t, f.ValidateConfig(types.Config{APIKey: "key", Model: "phind-70b"}))
}
