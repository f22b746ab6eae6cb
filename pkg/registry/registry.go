// Package registry implements the capability-typed provider registry
// (spec.md §4.E), generalized from the teacher's pkg/registry/registry.go
// (string-keyed provider/alias lookup) to capability-typed factory
// dispatch with lazy one-time built-in initialization.
package registry

import (
	"fmt"
	"sync"

	llmerrors "github.com/quillhq/llmkit/pkg/provider/errors"
	"github.com/quillhq/llmkit/pkg/provider/types"
)

// Provider is the minimal handle a factory produces. Per-capability
// operations (chat, embeddings, audio, ...) live on richer interfaces in
// each providers/<vendor> package; Registry only needs to know a Provider
// exists and what it's called.
type Provider interface {
	ID() string
}

// Factory declares one vendor's provider (spec.md §4.F).
type Factory interface {
	ID() string
	DisplayName() string
	Description() string
	Capabilities() types.CapabilitySet
	DefaultConfig() types.Config
	ValidateConfig(types.Config) error
	Create(types.Config) (Provider, error)
}

// ProviderInfo is the introspection shape surfaced by AllProviderInfo
// (SPEC_FULL.md §9 supplemented feature).
type ProviderInfo struct {
	ID           string
	DisplayName  string
	Description  string
	Capabilities types.CapabilitySet
}

// Registry is process-wide provider state. Reads may occur concurrently
// with writes; writes serialize (spec §4.E thread-safety contract).
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory

	once        sync.Once
	initBuiltin func(*Registry)
}

// New returns an empty Registry with no lazy built-in initializer. Use
// Default() to get the process-wide registry with built-ins.
func New() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

var defaultRegistry = &Registry{
	factories:   make(map[string]Factory),
	initBuiltin: registerBuiltins,
}

// Default returns the process-wide registry. Built-in factories are
// registered lazily, exactly once, on first use (spec §9: "document that
// built-in registration is performed lazily and exactly once").
func Default() *Registry {
	defaultRegistry.ensureInit()
	return defaultRegistry
}

func (r *Registry) ensureInit() {
	if r.initBuiltin == nil {
		return
	}
	r.once.Do(func() { r.initBuiltin(r) })
}

// Register adds factory, failing if its ID is already registered.
func (r *Registry) Register(f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[f.ID()]; exists {
		return llmerrors.New(llmerrors.KindInvalidRequest, fmt.Sprintf("provider %q already registered", f.ID()))
	}
	r.factories[f.ID()] = f
	return nil
}

// RegisterOrReplace adds factory, overwriting any existing registration
// with the same ID.
func (r *Registry) RegisterOrReplace(f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[f.ID()] = f
}

// Unregister removes a provider ID, a no-op if absent.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, id)
}

// GetFactory looks up a registered factory by ID.
func (r *Registry) GetFactory(id string) (Factory, bool) {
	r.ensureInit()
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[id]
	return f, ok
}

// IsRegistered reports whether id has a registered factory.
func (r *Registry) IsRegistered(id string) bool {
	_, ok := r.GetFactory(id)
	return ok
}

// SupportsCapability reports whether provider id advertises cap.
func (r *Registry) SupportsCapability(id string, cap types.Capability) bool {
	f, ok := r.GetFactory(id)
	if !ok {
		return false
	}
	return f.Capabilities().Has(cap)
}

// ProvidersWithCapability lists the IDs of every registered provider that
// advertises cap.
func (r *Registry) ProvidersWithCapability(cap types.Capability) []string {
	r.ensureInit()
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, f := range r.factories {
		if f.Capabilities().Has(cap) {
			ids = append(ids, id)
		}
	}
	return ids
}

// CreateProvider validates cfg against provider id's factory and builds a
// handle.
func (r *Registry) CreateProvider(id string, cfg types.Config) (Provider, error) {
	f, ok := r.GetFactory(id)
	if !ok {
		return nil, llmerrors.New(llmerrors.KindNotFound, fmt.Sprintf("provider %q is not registered", id))
	}
	if err := f.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return f.Create(cfg)
}

// AllProviderInfo surfaces introspection data for every registered
// provider (SPEC_FULL.md §9).
func (r *Registry) AllProviderInfo() []ProviderInfo {
	r.ensureInit()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ProviderInfo, 0, len(r.factories))
	for _, f := range r.factories {
		out = append(out, ProviderInfo{
			ID: f.ID(), DisplayName: f.DisplayName(), Description: f.Description(),
			Capabilities: f.Capabilities(),
		})
	}
	return out
}

// Clear removes every registered factory — a test hook (spec §4.E, §9).
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = make(map[string]Factory)
}
