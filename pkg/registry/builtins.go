package registry

import "sync"

// builtinFactories holds every Factory a providers/<vendor> package has
// registered via RegisterBuiltin from its own init(). Kept separate from
// Registry itself so providers/<vendor> packages only need to depend on
// registry (for the Factory interface and RegisterBuiltin), never the
// reverse — registry never imports a providers/<vendor> package, avoiding
// an import cycle between "the registry knows its built-ins" and "each
// vendor registers itself".
var (
	builtinMu        sync.Mutex
	builtinFactories []Factory
)

// RegisterBuiltin is called from a providers/<vendor> package's init() to
// offer itself as a built-in. It does not touch any Registry directly —
// actual registration happens lazily, the first time Default() is used,
// so importing a provider package for its side effects never forces
// network or validation work at import time.
func RegisterBuiltin(f Factory) {
	builtinMu.Lock()
	defer builtinMu.Unlock()
	builtinFactories = append(builtinFactories, f)
}

// registerBuiltins is Default()'s lazy one-time initializer. Each
// factory is registered independently; one failing registration (e.g. a
// duplicate ID from a bad build) does not prevent the rest from
// registering (spec.md §4.E).
func registerBuiltins(r *Registry) {
	builtinMu.Lock()
	snapshot := append([]Factory(nil), builtinFactories...)
	builtinMu.Unlock()

	for _, f := range snapshot {
		func() {
			defer func() { recover() }()
			_ = r.Register(f)
		}()
	}
}
