package registry

import (
	"testing"

	"github.com/quillhq/llmkit/pkg/provider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct{ id string }

func (p fakeProvider) ID() string { return p.id }

type fakeFactory struct {
	id   string
	caps types.CapabilitySet
	fail bool
}

func (f fakeFactory) ID() string                      { return f.id }
func (f fakeFactory) DisplayName() string             { return f.id }
func (f fakeFactory) Description() string             { return "fake" }
func (f fakeFactory) Capabilities() types.CapabilitySet { return f.caps }
func (f fakeFactory) DefaultConfig() types.Config     { return types.Config{} }
func (f fakeFactory) ValidateConfig(types.Config) error {
	if f.fail {
		return assertErr
	}
	return nil
}
func (f fakeFactory) Create(types.Config) (Provider, error) { return fakeProvider{id: f.id}, nil }

var assertErr = fakeErr("validation failed")

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

func TestRegisterAndGetFactory(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeFactory{id: "x", caps: types.CapabilitySet{types.CapChat: true}}))
	f, ok := r.GetFactory("x")
	require.True(t, ok)
	assert.Equal(t, "x", f.ID())
}

func TestRegisterDuplicateReturnsError(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeFactory{id: "x"}))
	err := r.Register(fakeFactory{id: "x"})
	assert.Error(t, err)
}

func TestRegisterOrReplaceOverwrites(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeFactory{id: "x", caps: types.CapabilitySet{types.CapChat: true}}))
	r.RegisterOrReplace(fakeFactory{id: "x", caps: types.CapabilitySet{types.CapEmbedding: true}})
	f, _ := r.GetFactory("x")
	assert.True(t, f.Capabilities().Has(types.CapEmbedding))
}

func TestSupportsCapabilityAndProvidersWithCapability(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeFactory{id: "a", caps: types.CapabilitySet{types.CapChat: true}}))
	require.NoError(t, r.Register(fakeFactory{id: "b", caps: types.CapabilitySet{types.CapEmbedding: true}}))
	assert.True(t, r.SupportsCapability("a", types.CapChat))
	assert.False(t, r.SupportsCapability("b", types.CapChat))
	assert.ElementsMatch(t, []string{"a"}, r.ProvidersWithCapability(types.CapChat))
}

func TestCreateProviderValidatesConfigFirst(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeFactory{id: "bad", fail: true}))
	_, err := r.CreateProvider("bad", types.Config{})
	assert.Error(t, err)
}

func TestCreateProviderUnknownID(t *testing.T) {
	r := New()
	_, err := r.CreateProvider("missing", types.Config{})
	assert.Error(t, err)
}

func TestClearRemovesEverything(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeFactory{id: "x"}))
	r.Clear()
	assert.False(t, r.IsRegistered("x"))
}

func TestBuiltinInitIsolatesFailures(t *testing.T) {
	r := &Registry{factories: make(map[string]Factory), initBuiltin: func(reg *Registry) {
		_ = reg.Register(fakeFactory{id: "ok1"})
		_ = reg.Register(fakeFactory{id: "ok1"}) // duplicate: errors, must not block ok2
		_ = reg.Register(fakeFactory{id: "ok2"})
	}}
	r.ensureInit()
	assert.True(t, r.IsRegistered("ok1"))
	assert.True(t, r.IsRegistered("ok2"))
}

func TestAllProviderInfo(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(fakeFactory{id: "x", caps: types.CapabilitySet{types.CapChat: true}}))
	infos := r.AllProviderInfo()
	require.Len(t, infos, 1)
	assert.Equal(t, "x", infos[0].ID)
}
